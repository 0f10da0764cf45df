// Package library provides the public facade for the bookshelf record
// manager. It re-exports the repository operations in transfer-record
// form: callers pass and receive DTOs with string dates, never entities
// or file handles.
package library

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/bookshelf/internal/textstore"
	"github.com/mesh-intelligence/bookshelf/pkg/types"
)

// Library wraps a Repository, validating incoming DTOs and converting
// between transfer records and entities.
type Library struct {
	repo     types.Repository
	validate *validator.Validate
}

// Open creates a repository for the configured backend, loads it from the
// data directory, and returns the facade over it.
//
// Example:
//
//	lib, err := library.Open(types.Config{
//	    Backend: types.BackendTextFile,
//	    DataDir: "data",
//	}, nil)
//	defer lib.Close()
func Open(config types.Config, log *logrus.Logger) (*Library, error) {
	repo := textstore.NewRepository(log)
	if err := repo.Open(config); err != nil {
		return nil, err
	}
	return New(repo), nil
}

// New wraps an already-open repository. Most callers want Open instead.
func New(repo types.Repository) *Library {
	return &Library{
		repo:     repo,
		validate: validator.New(),
	}
}

// Close releases the underlying repository.
func (l *Library) Close() error {
	return l.repo.Close()
}

// CreateUser validates and inserts a new user.
func (l *Library) CreateUser(dto types.UserDTO) error {
	if err := l.checkDTO(dto); err != nil {
		return err
	}
	user, err := userFromDTO(dto)
	if err != nil {
		return err
	}
	return l.repo.CreateUser(user)
}

// UpdateUser validates and applies changes to an existing user.
func (l *Library) UpdateUser(dto types.UserDTO) error {
	if err := l.checkDTO(dto); err != nil {
		return err
	}
	user, err := userFromDTO(dto)
	if err != nil {
		return err
	}
	return l.repo.UpdateUser(user)
}

// DeleteUser removes a user unless they hold an active loan.
func (l *Library) DeleteUser(id string) error {
	return l.repo.DeleteUser(id)
}

// FindUserByID returns the user with the given ID.
func (l *Library) FindUserByID(id string) (types.UserDTO, error) {
	user, err := l.repo.FindUserByID(id)
	if err != nil {
		return types.UserDTO{}, err
	}
	return userToDTO(user), nil
}

// FindUsersByName returns users whose name contains the given substring.
func (l *Library) FindUsersByName(name string) ([]types.UserDTO, error) {
	users, err := l.repo.FindUsersByName(name)
	if err != nil {
		return nil, err
	}
	return mapSlice(users, userToDTO), nil
}

// GetAllUsers returns every user.
func (l *Library) GetAllUsers() ([]types.UserDTO, error) {
	users, err := l.repo.GetAllUsers()
	if err != nil {
		return nil, err
	}
	return mapSlice(users, userToDTO), nil
}

// CreateBook validates and inserts a new book.
func (l *Library) CreateBook(dto types.BookDTO) error {
	if err := l.checkDTO(dto); err != nil {
		return err
	}
	return l.repo.CreateBook(bookFromDTO(dto))
}

// UpdateBook validates and applies changes to an existing book.
func (l *Library) UpdateBook(dto types.BookDTO) error {
	if err := l.checkDTO(dto); err != nil {
		return err
	}
	return l.repo.UpdateBook(bookFromDTO(dto))
}

// DeleteBook removes a book unless a copy is out on an active loan.
func (l *Library) DeleteBook(id string) error {
	return l.repo.DeleteBook(id)
}

// FindBookByID returns the book with the given ID.
func (l *Library) FindBookByID(id string) (types.BookDTO, error) {
	book, err := l.repo.FindBookByID(id)
	if err != nil {
		return types.BookDTO{}, err
	}
	return bookToDTO(book), nil
}

// FindBooksByTitle returns books whose title contains the given substring.
func (l *Library) FindBooksByTitle(title string) ([]types.BookDTO, error) {
	books, err := l.repo.FindBooksByTitle(title)
	if err != nil {
		return nil, err
	}
	return mapSlice(books, bookToDTO), nil
}

// GetAllBooks returns every book.
func (l *Library) GetAllBooks() ([]types.BookDTO, error) {
	books, err := l.repo.GetAllBooks()
	if err != nil {
		return nil, err
	}
	return mapSlice(books, bookToDTO), nil
}

// CreateLoan loans a book to a user and returns the generated loan ID.
func (l *Library) CreateLoan(userID, bookID string) (string, error) {
	return l.repo.CreateLoan(userID, bookID)
}

// RegisterReturn closes an active loan.
func (l *Library) RegisterReturn(loanID string) error {
	return l.repo.RegisterReturn(loanID)
}

// FindLoanByID returns the loan with the given ID.
func (l *Library) FindLoanByID(id string) (types.LoanDTO, error) {
	loan, err := l.repo.FindLoanByID(id)
	if err != nil {
		return types.LoanDTO{}, err
	}
	return loanToDTO(loan), nil
}

// GetActiveLoans returns the loans that are still outstanding.
func (l *Library) GetActiveLoans() ([]types.LoanDTO, error) {
	loans, err := l.repo.GetActiveLoans()
	if err != nil {
		return nil, err
	}
	return mapSlice(loans, loanToDTO), nil
}

// FindLoansByUserID returns every loan for a user.
func (l *Library) FindLoansByUserID(userID string) ([]types.LoanDTO, error) {
	loans, err := l.repo.FindLoansByUserID(userID)
	if err != nil {
		return nil, err
	}
	return mapSlice(loans, loanToDTO), nil
}

// GetAllLoans returns every loan.
func (l *Library) GetAllLoans() ([]types.LoanDTO, error) {
	loans, err := l.repo.GetAllLoans()
	if err != nil {
		return nil, err
	}
	return mapSlice(loans, loanToDTO), nil
}

// checkDTO runs struct-tag validation, folding failures into
// ErrInvalidData so callers match on the sentinel.
func (l *Library) checkDTO(dto any) error {
	if err := l.validate.Struct(dto); err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	return nil
}
