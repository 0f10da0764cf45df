// DTO conversions between transfer records and entities. Dates cross the
// boundary as yyyy-MM-dd strings; empty means absent.

package library

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/bookshelf/pkg/types"
)

func userToDTO(u types.User) types.UserDTO {
	return types.UserDTO{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		Address:          u.Address,
		BirthDate:        dateToString(u.BirthDate),
		RegistrationDate: dateToString(u.RegistrationDate),
		Active:           u.Active,
	}
}

func userFromDTO(dto types.UserDTO) (types.User, error) {
	birthDate, err := dateFromString(dto.BirthDate)
	if err != nil {
		return types.User{}, fmt.Errorf("birth date: %w", err)
	}
	registrationDate, err := dateFromString(dto.RegistrationDate)
	if err != nil {
		return types.User{}, fmt.Errorf("registration date: %w", err)
	}
	return types.User{
		ID:               dto.ID,
		Name:             dto.Name,
		Email:            dto.Email,
		Phone:            dto.Phone,
		Address:          dto.Address,
		BirthDate:        birthDate,
		RegistrationDate: registrationDate,
		Active:           dto.Active,
	}, nil
}

func bookToDTO(b types.Book) types.BookDTO {
	return types.BookDTO{
		ID:             b.ID,
		Title:          b.Title,
		Author:         b.Author,
		ISBN:           b.ISBN,
		Stock:          b.Stock,
		AvailableStock: b.AvailableStock,
	}
}

func bookFromDTO(dto types.BookDTO) types.Book {
	return types.Book{
		ID:             dto.ID,
		Title:          dto.Title,
		Author:         dto.Author,
		ISBN:           dto.ISBN,
		Stock:          dto.Stock,
		AvailableStock: dto.AvailableStock,
	}
}

func loanToDTO(l types.Loan) types.LoanDTO {
	return types.LoanDTO{
		ID:         l.ID,
		UserID:     l.UserID,
		BookID:     l.BookID,
		LoanDate:   dateToString(l.LoanDate),
		ReturnDate: dateToString(l.ReturnDate),
		Active:     l.Active,
	}
}

func mapSlice[T, D any](in []T, convert func(T) D) []D {
	out := make([]D, len(in))
	for i, v := range in {
		out[i] = convert(v)
	}
	return out
}

func dateToString(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

func dateFromString(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}
