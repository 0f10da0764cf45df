package textstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/bookshelf/pkg/types"
)

// openRepository opens a repository over a temp directory with logging
// silenced, closing it when the test finishes.
func openRepository(t *testing.T) *Repository {
	t.Helper()
	return openRepositoryAt(t, t.TempDir())
}

func openRepositoryAt(t *testing.T, dir string) *Repository {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	r := NewRepository(log)
	require.NoError(t, r.Open(types.Config{Backend: types.BackendTextFile, DataDir: dir}))
	t.Cleanup(func() { r.Close() })
	return r
}

// seedUserAndBook inserts one user and one book with the given stock.
func seedUserAndBook(t *testing.T, r *Repository, stock int) {
	t.Helper()
	require.NoError(t, r.CreateUser(types.User{ID: "U1", Name: "Ana", Active: true}))
	require.NoError(t, r.CreateBook(types.Book{
		ID: "B1", Title: "Ficciones", Author: "Borges", Stock: stock, AvailableStock: stock,
	}))
}

func TestOpenClose(t *testing.T) {
	t.Run("double open returns ErrAlreadyOpen", func(t *testing.T) {
		r := openRepository(t)
		err := r.Open(types.Config{Backend: types.BackendTextFile, DataDir: t.TempDir()})
		assert.ErrorIs(t, err, types.ErrAlreadyOpen)
	})

	t.Run("operations after close return ErrStoreClosed", func(t *testing.T) {
		r := openRepository(t)
		require.NoError(t, r.Close())

		_, err := r.GetAllUsers()
		assert.ErrorIs(t, err, types.ErrStoreClosed)
		assert.ErrorIs(t, r.CreateUser(types.User{ID: "U1"}), types.ErrStoreClosed)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		r := openRepository(t)
		require.NoError(t, r.Close())
		require.NoError(t, r.Close())
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		r := NewRepository(nil)
		err := r.Open(types.Config{Backend: "postgres", DataDir: t.TempDir()})
		assert.ErrorIs(t, err, types.ErrBackendUnknown)
	})

	t.Run("creates a missing data directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		openRepositoryAt(t, dir)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestCreateUser(t *testing.T) {
	r := openRepository(t)

	t.Run("empty directory starts with no users", func(t *testing.T) {
		users, err := r.GetAllUsers()
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("first create succeeds", func(t *testing.T) {
		require.NoError(t, r.CreateUser(types.User{ID: "U1", Name: "Ana", Active: true}))
	})

	t.Run("duplicate id is rejected, never overwritten", func(t *testing.T) {
		err := r.CreateUser(types.User{ID: "U1", Name: "Impostora"})
		assert.ErrorIs(t, err, types.ErrDuplicateID)

		users, err := r.GetAllUsers()
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Ana", users[0].Name)
	})

	t.Run("empty id is rejected", func(t *testing.T) {
		assert.ErrorIs(t, r.CreateUser(types.User{Name: "Nadie"}), types.ErrInvalidID)
	})

	t.Run("registration date defaults to today", func(t *testing.T) {
		require.NoError(t, r.CreateUser(types.User{ID: "U2", Name: "Luis", Active: true}))
		u, err := r.FindUserByID("U2")
		require.NoError(t, err)
		assert.Equal(t, today(), u.RegistrationDate)
	})
}

func TestUpdateUser(t *testing.T) {
	r := openRepository(t)
	require.NoError(t, r.CreateUser(types.User{ID: "U1", Name: "Ana", Email: "old@example.com", Active: true}))

	t.Run("overwrites fields in place", func(t *testing.T) {
		require.NoError(t, r.UpdateUser(types.User{ID: "U1", Name: "Ana María", Email: "new@example.com", Active: false}))
		u, err := r.FindUserByID("U1")
		require.NoError(t, err)
		assert.Equal(t, "Ana María", u.Name)
		assert.Equal(t, "new@example.com", u.Email)
		assert.False(t, u.Active)
	})

	t.Run("unknown id returns ErrNotFound", func(t *testing.T) {
		assert.ErrorIs(t, r.UpdateUser(types.User{ID: "U9"}), types.ErrNotFound)
	})
}

func TestFindUsers(t *testing.T) {
	r := openRepository(t)
	require.NoError(t, r.CreateUser(types.User{ID: "U1", Name: "Ana Torres", Active: true}))
	require.NoError(t, r.CreateUser(types.User{ID: "U2", Name: "Mariana Ruiz", Active: true}))
	require.NoError(t, r.CreateUser(types.User{ID: "U3", Name: "Luis Pardo", Active: true}))

	t.Run("by name is case-insensitive substring in collection order", func(t *testing.T) {
		got, err := r.FindUsersByName("ANA")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "U1", got[0].ID)
		assert.Equal(t, "U2", got[1].ID)
	})

	t.Run("no matches is empty, not an error", func(t *testing.T) {
		got, err := r.FindUsersByName("zz")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("by id", func(t *testing.T) {
		u, err := r.FindUserByID("U3")
		require.NoError(t, err)
		assert.Equal(t, "Luis Pardo", u.Name)

		_, err = r.FindUserByID("U9")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		users, err := r.GetAllUsers()
		require.NoError(t, err)
		users[0].Name = "mutated"

		again, err := r.GetAllUsers()
		require.NoError(t, err)
		assert.Equal(t, "Ana Torres", again[0].Name)
	})
}

func TestBookCRUD(t *testing.T) {
	r := openRepository(t)

	require.NoError(t, r.CreateBook(types.Book{ID: "B1", Title: "Rayuela", Author: "Cortázar", Stock: 2, AvailableStock: 2}))
	assert.ErrorIs(t, r.CreateBook(types.Book{ID: "B1", Title: "Copy"}), types.ErrDuplicateID)
	assert.ErrorIs(t, r.CreateBook(types.Book{Title: "No ID"}), types.ErrInvalidID)

	require.NoError(t, r.UpdateBook(types.Book{ID: "B1", Title: "Rayuela", Author: "Julio Cortázar", Stock: 3, AvailableStock: 3}))
	b, err := r.FindBookByID("B1")
	require.NoError(t, err)
	assert.Equal(t, "Julio Cortázar", b.Author)
	assert.Equal(t, 3, b.Stock)

	assert.ErrorIs(t, r.UpdateBook(types.Book{ID: "B9"}), types.ErrNotFound)

	got, err := r.FindBooksByTitle("rayu")
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.NoError(t, r.DeleteBook("B1"))
	_, err = r.FindBookByID("B1")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, r.DeleteBook("B1"), types.ErrNotFound)
}

func TestCreateLoan(t *testing.T) {
	t.Run("decrements stock and returns unique ids", func(t *testing.T) {
		r := openRepository(t)
		seedUserAndBook(t, r, 2)

		first, err := r.CreateLoan("U1", "B1")
		require.NoError(t, err)
		second, err := r.CreateLoan("U1", "B1")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)

		b, err := r.FindBookByID("B1")
		require.NoError(t, err)
		assert.Equal(t, 0, b.AvailableStock)

		loan, err := r.FindLoanByID(first)
		require.NoError(t, err)
		assert.True(t, loan.Active)
		assert.Equal(t, today(), loan.LoanDate)
		assert.True(t, loan.ReturnDate.IsZero())
	})

	t.Run("unknown user fails with no state change", func(t *testing.T) {
		r := openRepository(t)
		seedUserAndBook(t, r, 1)

		_, err := r.CreateLoan("U9", "B1")
		assert.ErrorIs(t, err, types.ErrNotFound)

		b, _ := r.FindBookByID("B1")
		assert.Equal(t, 1, b.AvailableStock)
		loans, _ := r.GetAllLoans()
		assert.Empty(t, loans)
	})

	t.Run("unknown book fails", func(t *testing.T) {
		r := openRepository(t)
		seedUserAndBook(t, r, 1)

		_, err := r.CreateLoan("U1", "B9")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("exhausted stock fails", func(t *testing.T) {
		r := openRepository(t)
		seedUserAndBook(t, r, 1)

		_, err := r.CreateLoan("U1", "B1")
		require.NoError(t, err)
		_, err = r.CreateLoan("U1", "B1")
		assert.ErrorIs(t, err, types.ErrBookUnavailable)
	})
}

func TestRegisterReturn(t *testing.T) {
	t.Run("closes the loan and restores stock", func(t *testing.T) {
		r := openRepository(t)
		seedUserAndBook(t, r, 1)
		loanID, err := r.CreateLoan("U1", "B1")
		require.NoError(t, err)

		require.NoError(t, r.RegisterReturn(loanID))

		loan, err := r.FindLoanByID(loanID)
		require.NoError(t, err)
		assert.False(t, loan.Active)
		assert.Equal(t, today(), loan.ReturnDate)

		b, err := r.FindBookByID("B1")
		require.NoError(t, err)
		assert.Equal(t, 1, b.AvailableStock)
	})

	t.Run("second return fails with no further change", func(t *testing.T) {
		r := openRepository(t)
		seedUserAndBook(t, r, 2)
		loanID, err := r.CreateLoan("U1", "B1")
		require.NoError(t, err)
		require.NoError(t, r.RegisterReturn(loanID))

		assert.ErrorIs(t, r.RegisterReturn(loanID), types.ErrLoanClosed)

		b, _ := r.FindBookByID("B1")
		assert.Equal(t, 2, b.AvailableStock)
	})

	t.Run("unknown loan fails", func(t *testing.T) {
		r := openRepository(t)
		assert.ErrorIs(t, r.RegisterReturn("L-nope"), types.ErrNotFound)
	})

	t.Run("return reopens availability for one more loan", func(t *testing.T) {
		r := openRepository(t)
		seedUserAndBook(t, r, 2)

		first, err := r.CreateLoan("U1", "B1")
		require.NoError(t, err)
		_, err = r.CreateLoan("U1", "B1")
		require.NoError(t, err)
		_, err = r.CreateLoan("U1", "B1")
		assert.ErrorIs(t, err, types.ErrBookUnavailable)

		require.NoError(t, r.RegisterReturn(first))
		b, _ := r.FindBookByID("B1")
		assert.Equal(t, 1, b.AvailableStock)

		_, err = r.CreateLoan("U1", "B1")
		require.NoError(t, err)
	})
}

func TestDeleteBlockedByActiveLoans(t *testing.T) {
	r := openRepository(t)
	seedUserAndBook(t, r, 1)
	loanID, err := r.CreateLoan("U1", "B1")
	require.NoError(t, err)

	assert.ErrorIs(t, r.DeleteUser("U1"), types.ErrActiveLoans)
	assert.ErrorIs(t, r.DeleteBook("B1"), types.ErrActiveLoans)

	require.NoError(t, r.RegisterReturn(loanID))

	assert.NoError(t, r.DeleteUser("U1"))
	assert.NoError(t, r.DeleteBook("B1"))
}

func TestLoanQueries(t *testing.T) {
	r := openRepository(t)
	require.NoError(t, r.CreateUser(types.User{ID: "U1", Name: "Ana", Active: true}))
	require.NoError(t, r.CreateUser(types.User{ID: "U2", Name: "Luis", Active: true}))
	require.NoError(t, r.CreateBook(types.Book{ID: "B1", Title: "T", Stock: 3, AvailableStock: 3}))

	l1, err := r.CreateLoan("U1", "B1")
	require.NoError(t, err)
	_, err = r.CreateLoan("U2", "B1")
	require.NoError(t, err)
	l3, err := r.CreateLoan("U1", "B1")
	require.NoError(t, err)
	require.NoError(t, r.RegisterReturn(l1))

	active, err := r.GetActiveLoans()
	require.NoError(t, err)
	assert.Len(t, active, 2)

	byUser, err := r.FindLoansByUserID("U1")
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, l1, byUser[0].ID)
	assert.Equal(t, l3, byUser[1].ID)

	all, err := r.GetAllLoans()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	r := openRepositoryAt(t, dir)
	seedUserAndBook(t, r, 2)
	loanID, err := r.CreateLoan("U1", "B1")
	require.NoError(t, err)
	require.NoError(t, r.Close())

	// A second repository over the same directory sees the same state.
	r2 := openRepositoryAt(t, dir)
	u, err := r2.FindUserByID("U1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)

	b, err := r2.FindBookByID("B1")
	require.NoError(t, err)
	assert.Equal(t, 1, b.AvailableStock)

	loan, err := r2.FindLoanByID(loanID)
	require.NoError(t, err)
	assert.True(t, loan.Active)

	require.NoError(t, r2.RegisterReturn(loanID))
}

func TestOpen_CollectsLoadReport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile),
		[]byte("U1|Ana|||||2024-01-15|true\nbroken\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, LoansFile),
		[]byte("L-1|U1|B1|not-a-date|null|true\n"), 0o644))

	r := openRepositoryAt(t, dir)

	users, err := r.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, users, 1)

	report := r.LoadReport()
	require.Len(t, report, 2)
	assert.Equal(t, UsersFile, report[0].File)
	assert.Equal(t, LoansFile, report[1].File)
}
