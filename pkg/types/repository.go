package types

// Repository defines the storage contract for the three entity collections.
// Implementations hold the collections in memory for the process lifetime,
// load them once on Open, and write through to durable storage on every
// mutation. Business-rule violations are reported with the sentinel errors
// from this package; anything else is an I/O fault wrapped around the
// underlying cause.
type Repository interface {
	// Open loads the collections from the directory named by config.
	// Creates the data directory if it does not exist. Returns
	// ErrAlreadyOpen if called while already open.
	Open(config Config) error

	// Close releases the repository. Idempotent: multiple calls succeed.
	// After Close, operations return ErrStoreClosed.
	Close() error

	// CreateUser inserts a new user. Returns ErrInvalidID for an empty
	// ID and ErrDuplicateID if the ID is already taken; an existing
	// user is never overwritten.
	CreateUser(user User) error
	// UpdateUser overwrites every field except ID of an existing user.
	// Returns ErrNotFound if no user has the given ID.
	UpdateUser(user User) error
	// DeleteUser removes a user. Returns ErrNotFound for an unknown ID
	// and ErrActiveLoans while any loan referencing the user is active.
	DeleteUser(id string) error
	// FindUserByID returns the user with the given ID, or ErrNotFound.
	FindUserByID(id string) (User, error)
	// FindUsersByName returns users whose name contains the given
	// substring, case-insensitively, in collection order.
	FindUsersByName(name string) ([]User, error)
	// GetAllUsers returns a snapshot copy of the user collection.
	GetAllUsers() ([]User, error)

	// CreateBook inserts a new book. Same ID rules as CreateUser.
	CreateBook(book Book) error
	// UpdateBook overwrites every field except ID of an existing book.
	UpdateBook(book Book) error
	// DeleteBook removes a book. Returns ErrActiveLoans while any loan
	// referencing the book is active.
	DeleteBook(id string) error
	// FindBookByID returns the book with the given ID, or ErrNotFound.
	FindBookByID(id string) (Book, error)
	// FindBooksByTitle returns books whose title contains the given
	// substring, case-insensitively, in collection order.
	FindBooksByTitle(title string) ([]Book, error)
	// GetAllBooks returns a snapshot copy of the book collection.
	GetAllBooks() ([]Book, error)

	// CreateLoan opens a loan of the given book to the given user and
	// returns the generated loan ID. Returns ErrNotFound when either
	// reference is unknown and ErrBookUnavailable when no copy is free.
	// On success the book's available stock drops by one.
	CreateLoan(userID, bookID string) (string, error)
	// RegisterReturn closes an active loan, stamping the return date and
	// restoring one copy of the book's available stock. Returns
	// ErrNotFound for an unknown loan and ErrLoanClosed for a loan that
	// was already returned.
	RegisterReturn(loanID string) error
	// FindLoanByID returns the loan with the given ID, or ErrNotFound.
	FindLoanByID(id string) (Loan, error)
	// GetActiveLoans returns the loans that are still outstanding.
	GetActiveLoans() ([]Loan, error)
	// FindLoansByUserID returns every loan, open or closed, for a user.
	FindLoansByUserID(userID string) ([]Loan, error)
	// GetAllLoans returns a snapshot copy of the loan collection.
	GetAllLoans() ([]Loan, error)
}
