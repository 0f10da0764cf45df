package types

// Transfer records exchanged with callers of the library facade. Dates are
// ISO calendar strings (yyyy-MM-dd); empty means absent. The facade
// validates these with the struct tags below before converting to entities.

// UserDTO is the transfer form of User.
type UserDTO struct {
	ID               string `json:"id" validate:"required"`
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"omitempty,email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	BirthDate        string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	RegistrationDate string `json:"registration_date" validate:"omitempty,datetime=2006-01-02"`
	Active           bool   `json:"active"`
}

// BookDTO is the transfer form of Book.
type BookDTO struct {
	ID             string `json:"id" validate:"required"`
	Title          string `json:"title" validate:"required"`
	Author         string `json:"author"`
	ISBN           string `json:"isbn"`
	Stock          int    `json:"stock" validate:"gte=0"`
	AvailableStock int    `json:"available_stock" validate:"gte=0,ltefield=Stock"`
}

// LoanDTO is the transfer form of Loan. Loans are created through
// CreateLoan(userID, bookID), so the DTO only flows outward and carries
// no validation tags.
type LoanDTO struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	BookID     string `json:"book_id"`
	LoanDate   string `json:"loan_date"`
	ReturnDate string `json:"return_date"`
	Active     bool   `json:"active"`
}
