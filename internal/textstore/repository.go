// Package textstore implements the text-file storage backend for the
// bookshelf record manager: an in-memory repository over three
// |-delimited data files with write-through persistence.
package textstore

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/bookshelf/pkg/types"
)

// Compile-time interface check: Repository must implement types.Repository.
var _ types.Repository = (*Repository)(nil)

// loanIDPrefix tags generated loan identifiers.
const loanIDPrefix = "L-"

// Repository holds the three entity collections in memory for the process
// lifetime. Collections load once on Open; every mutating call writes the
// affected collections back through the Store before returning. A
// persistence failure does not roll back the in-memory mutation; the
// I/O error is returned alongside the already-applied change.
//
// The coarse lock keeps the read-modify-write-then-persist pattern safe
// should the repository ever sit behind a multi-client surface.
type Repository struct {
	mu    sync.RWMutex
	open  bool
	cfg   types.Config
	store *Store
	log   *logrus.Logger

	users []types.User
	books []types.Book
	loans []types.Loan

	loadReport []LineError
}

// NewRepository creates an unopened repository. A nil logger falls back to
// the logrus standard logger. Call Open with a Config before use.
func NewRepository(log *logrus.Logger) *Repository {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Repository{log: log}
}

// Open validates the config, creates the data directory if needed, and
// loads the three collections. Malformed lines are dropped with a warning
// and collected into the load report; they never abort the open.
// Returns ErrAlreadyOpen if called while already open.
func (r *Repository) Open(config types.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.open {
		return types.ErrAlreadyOpen
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	store := NewStore(dataDir, r.log)

	users, userReport, err := store.LoadUsers()
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}
	books, bookReport, err := store.LoadBooks()
	if err != nil {
		return fmt.Errorf("loading books: %w", err)
	}
	loans, loanReport, err := store.LoadLoans()
	if err != nil {
		return fmt.Errorf("loading loans: %w", err)
	}

	r.cfg = config
	r.store = store
	r.users = users
	r.books = books
	r.loans = loans
	r.loadReport = append(append(append([]LineError(nil), userReport...), bookReport...), loanReport...)
	r.open = true

	r.log.WithFields(logrus.Fields{
		"data_dir": dataDir,
		"users":    len(users),
		"books":    len(books),
		"loans":    len(loans),
		"skipped":  len(r.loadReport),
	}).Info("repository opened")

	return nil
}

// Close releases the repository. Idempotent: closing a closed repository
// succeeds. The collections are already on disk, so nothing is flushed.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.open = false
	r.users = nil
	r.books = nil
	r.loans = nil
	return nil
}

// LoadReport returns the per-line decode failures collected during Open.
func (r *Repository) LoadReport() []LineError {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.loadReport)
}

// CreateUser inserts a new user. An existing ID is never overwritten.
func (r *Repository) CreateUser(user types.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		return types.ErrStoreClosed
	}
	if user.ID == "" {
		return types.ErrInvalidID
	}
	if r.findUserIndex(user.ID) != -1 {
		return types.ErrDuplicateID
	}
	if user.RegistrationDate.IsZero() {
		user.RegistrationDate = today()
	}

	r.users = append(r.users, user)
	return r.persistUsers()
}

// UpdateUser overwrites every field except ID of an existing user.
func (r *Repository) UpdateUser(user types.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		return types.ErrStoreClosed
	}
	i := r.findUserIndex(user.ID)
	if i == -1 {
		return types.ErrNotFound
	}

	r.users[i] = user
	return r.persistUsers()
}

// DeleteUser removes a user unless any loan referencing them is active.
func (r *Repository) DeleteUser(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		return types.ErrStoreClosed
	}
	i := r.findUserIndex(id)
	if i == -1 {
		return types.ErrNotFound
	}
	for _, l := range r.loans {
		if l.UserID == id && l.Active {
			return types.ErrActiveLoans
		}
	}

	r.users = slices.Delete(r.users, i, i+1)
	return r.persistUsers()
}

// FindUserByID returns the user with the given ID.
func (r *Repository) FindUserByID(id string) (types.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.open {
		return types.User{}, types.ErrStoreClosed
	}
	i := r.findUserIndex(id)
	if i == -1 {
		return types.User{}, types.ErrNotFound
	}
	return r.users[i], nil
}

// FindUsersByName returns users whose name contains the given substring,
// case-insensitively, in collection order.
func (r *Repository) FindUsersByName(name string) ([]types.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.open {
		return nil, types.ErrStoreClosed
	}
	needle := strings.ToLower(name)
	var matches []types.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Name), needle) {
			matches = append(matches, u)
		}
	}
	return matches, nil
}

// GetAllUsers returns a snapshot copy of the user collection.
func (r *Repository) GetAllUsers() ([]types.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.open {
		return nil, types.ErrStoreClosed
	}
	return slices.Clone(r.users), nil
}

// CreateBook inserts a new book. An existing ID is never overwritten.
func (r *Repository) CreateBook(book types.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		return types.ErrStoreClosed
	}
	if book.ID == "" {
		return types.ErrInvalidID
	}
	if r.findBookIndex(book.ID) != -1 {
		return types.ErrDuplicateID
	}

	r.books = append(r.books, book)
	return r.persistBooks()
}

// UpdateBook overwrites every field except ID of an existing book.
func (r *Repository) UpdateBook(book types.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		return types.ErrStoreClosed
	}
	i := r.findBookIndex(book.ID)
	if i == -1 {
		return types.ErrNotFound
	}

	r.books[i] = book
	return r.persistBooks()
}

// DeleteBook removes a book unless any loan referencing it is active.
func (r *Repository) DeleteBook(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		return types.ErrStoreClosed
	}
	i := r.findBookIndex(id)
	if i == -1 {
		return types.ErrNotFound
	}
	for _, l := range r.loans {
		if l.BookID == id && l.Active {
			return types.ErrActiveLoans
		}
	}

	r.books = slices.Delete(r.books, i, i+1)
	return r.persistBooks()
}

// FindBookByID returns the book with the given ID.
func (r *Repository) FindBookByID(id string) (types.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.open {
		return types.Book{}, types.ErrStoreClosed
	}
	i := r.findBookIndex(id)
	if i == -1 {
		return types.Book{}, types.ErrNotFound
	}
	return r.books[i], nil
}

// FindBooksByTitle returns books whose title contains the given substring,
// case-insensitively, in collection order.
func (r *Repository) FindBooksByTitle(title string) ([]types.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.open {
		return nil, types.ErrStoreClosed
	}
	needle := strings.ToLower(title)
	var matches []types.Book
	for _, b := range r.books {
		if strings.Contains(strings.ToLower(b.Title), needle) {
			matches = append(matches, b)
		}
	}
	return matches, nil
}

// GetAllBooks returns a snapshot copy of the book collection.
func (r *Repository) GetAllBooks() ([]types.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.open {
		return nil, types.ErrStoreClosed
	}
	return slices.Clone(r.books), nil
}

// CreateLoan opens a loan of the given book to the given user and returns
// the generated loan ID. The referenced book's available stock drops by
// one, and both the loan and book collections are persisted.
func (r *Repository) CreateLoan(userID, bookID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		return "", types.ErrStoreClosed
	}
	if r.findUserIndex(userID) == -1 {
		return "", types.ErrNotFound
	}
	bi := r.findBookIndex(bookID)
	if bi == -1 {
		return "", types.ErrNotFound
	}
	if !r.books[bi].IsAvailable() {
		return "", types.ErrBookUnavailable
	}

	loanID, err := r.newLoanID()
	if err != nil {
		return "", err
	}
	loan := types.Loan{
		ID:       loanID,
		UserID:   userID,
		BookID:   bookID,
		LoanDate: today(),
		Active:   true,
	}
	r.loans = append(r.loans, loan)
	r.books[bi].AvailableStock--

	if err := r.persistLoans(); err != nil {
		return loanID, err
	}
	return loanID, r.persistBooks()
}

// RegisterReturn closes an active loan, stamping the return date and
// restoring one copy of the referenced book's available stock.
func (r *Repository) RegisterReturn(loanID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		return types.ErrStoreClosed
	}
	li := r.findLoanIndex(loanID)
	if li == -1 {
		return types.ErrNotFound
	}
	if err := r.loans[li].Return(today()); err != nil {
		return err
	}

	// The book may have been removed after the loan closed historically;
	// a missing book only skips the stock adjustment.
	if bi := r.findBookIndex(r.loans[li].BookID); bi != -1 {
		if r.books[bi].AvailableStock < r.books[bi].Stock {
			r.books[bi].AvailableStock++
		}
	}

	if err := r.persistLoans(); err != nil {
		return err
	}
	return r.persistBooks()
}

// FindLoanByID returns the loan with the given ID.
func (r *Repository) FindLoanByID(id string) (types.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.open {
		return types.Loan{}, types.ErrStoreClosed
	}
	i := r.findLoanIndex(id)
	if i == -1 {
		return types.Loan{}, types.ErrNotFound
	}
	return r.loans[i], nil
}

// GetActiveLoans returns the loans that are still outstanding.
func (r *Repository) GetActiveLoans() ([]types.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.open {
		return nil, types.ErrStoreClosed
	}
	var active []types.Loan
	for _, l := range r.loans {
		if l.Active {
			active = append(active, l)
		}
	}
	return active, nil
}

// FindLoansByUserID returns every loan, open or closed, for a user.
func (r *Repository) FindLoansByUserID(userID string) ([]types.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.open {
		return nil, types.ErrStoreClosed
	}
	var matches []types.Loan
	for _, l := range r.loans {
		if l.UserID == userID {
			matches = append(matches, l)
		}
	}
	return matches, nil
}

// GetAllLoans returns a snapshot copy of the loan collection.
func (r *Repository) GetAllLoans() ([]types.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.open {
		return nil, types.ErrStoreClosed
	}
	return slices.Clone(r.loans), nil
}

// newLoanID generates a unique loan identifier: the L- prefix over a
// UUID v7. The predecessor used a millisecond timestamp, which collides
// under rapid successive calls; UUIDs close that hole. The existence
// check guards against ids carried in from hand-edited data files.
func (r *Repository) newLoanID() (string, error) {
	for {
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generating loan ID: %w", err)
		}
		loanID := loanIDPrefix + id.String()
		if r.findLoanIndex(loanID) == -1 {
			return loanID, nil
		}
	}
}

func (r *Repository) findUserIndex(id string) int {
	return slices.IndexFunc(r.users, func(u types.User) bool { return u.ID == id })
}

func (r *Repository) findBookIndex(id string) int {
	return slices.IndexFunc(r.books, func(b types.Book) bool { return b.ID == id })
}

func (r *Repository) findLoanIndex(id string) int {
	return slices.IndexFunc(r.loans, func(l types.Loan) bool { return l.ID == id })
}

// persistUsers writes the user collection through to disk. On failure the
// in-memory mutation stays applied; the caller gets the I/O error.
func (r *Repository) persistUsers() error {
	if err := r.store.SaveUsers(r.users); err != nil {
		r.log.WithError(err).Error("saving users")
		return fmt.Errorf("saving users: %w", err)
	}
	return nil
}

func (r *Repository) persistBooks() error {
	if err := r.store.SaveBooks(r.books); err != nil {
		r.log.WithError(err).Error("saving books")
		return fmt.Errorf("saving books: %w", err)
	}
	return nil
}

func (r *Repository) persistLoans() error {
	if err := r.store.SaveLoans(r.loans); err != nil {
		r.log.WithError(err).Error("saving loans")
		return fmt.Errorf("saving loans: %w", err)
	}
	return nil
}

// today returns the current calendar date, truncated to midnight UTC so
// encoded and decoded values compare equal.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
