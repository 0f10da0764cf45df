package types

import "time"

// Loan binds a user to a book copy for a period of time.
// A loan starts active and ends returned; there is no way back.
type Loan struct {
	ID         string    // Generated on creation.
	UserID     string    // References an existing User.
	BookID     string    // References an existing Book.
	LoanDate   time.Time
	ReturnDate time.Time // Zero while the loan is outstanding.
	Active     bool      // true = outstanding, false = returned.
}

// Return closes the loan, recording the given return date.
// Returns ErrLoanClosed if the loan is already returned; a returned
// loan is terminal and never reactivated.
func (l *Loan) Return(date time.Time) error {
	if !l.Active {
		return ErrLoanClosed
	}
	l.ReturnDate = date
	l.Active = false
	return nil
}
