// Line codec for the text-file backend: one entity to one |-delimited
// line and back. Decoding is defensive; a bad line yields an error for
// the loader to report, never a panic or a partial entity.

package textstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/bookshelf/internal/datetext"
	"github.com/mesh-intelligence/bookshelf/pkg/types"
)

// Delimiter separates fields within a line. Applied as a literal split:
// field values must not contain it. No escaping is implemented; this is a
// known limitation of the inherited format.
const Delimiter = "|"

// Field counts per entity line.
const (
	userFieldCount       = 8
	bookFieldCount       = 6
	bookLegacyFieldCount = 5 // id|title|author|isbn|availableBoolean
	loanFieldCount       = 6
)

// nullToken encodes an absent loan return date. User dates encode absence
// as the empty string instead; the asymmetry is load-bearing for
// round-trip compatibility with existing data files.
const nullToken = "null"

// EncodeUser renders a user as one users.txt line:
// id|name|email|phone|address|birthDate|registrationDate|active.
func EncodeUser(u types.User) string {
	fields := []string{
		u.ID,
		u.Name,
		u.Email,
		u.Phone,
		u.Address,
		encodeDate(u.BirthDate),
		encodeDate(u.RegistrationDate),
		strconv.FormatBool(u.Active),
	}
	return strings.Join(fields, Delimiter)
}

// DecodeUser parses one users.txt line. The optional dates accept the
// empty string; the birth date additionally accepts the long-form Spanish
// text that legacy files stored it as.
func DecodeUser(line string) (types.User, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != userFieldCount {
		return types.User{}, fmt.Errorf("user line has %d fields, want %d", len(fields), userFieldCount)
	}

	u := types.User{
		ID:      fields[0],
		Name:    fields[1],
		Email:   fields[2],
		Phone:   fields[3],
		Address: fields[4],
	}

	birthDate, err := decodeLegacyDate(fields[5])
	if err != nil {
		return types.User{}, fmt.Errorf("birth date: %w", err)
	}
	u.BirthDate = birthDate

	registrationDate, err := decodeDate(fields[6])
	if err != nil {
		return types.User{}, fmt.Errorf("registration date: %w", err)
	}
	u.RegistrationDate = registrationDate

	active, err := strconv.ParseBool(fields[7])
	if err != nil {
		return types.User{}, fmt.Errorf("active flag: %w", err)
	}
	u.Active = active

	return u, nil
}

// EncodeBook renders a book as one books.txt line:
// id|title|author|isbn|stock|availableStock.
func EncodeBook(b types.Book) string {
	fields := []string{
		b.ID,
		b.Title,
		b.Author,
		b.ISBN,
		strconv.Itoa(b.Stock),
		strconv.Itoa(b.AvailableStock),
	}
	return strings.Join(fields, Delimiter)
}

// DecodeBook parses one books.txt line. A legacy 5-field line carries a
// boolean availability flag instead of stock integers and is upgraded on
// read to stock=1 with availableStock 1 or 0.
func DecodeBook(line string) (types.Book, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) < bookLegacyFieldCount {
		return types.Book{}, fmt.Errorf("book line has %d fields, want at least %d", len(fields), bookLegacyFieldCount)
	}

	b := types.Book{
		ID:     fields[0],
		Title:  fields[1],
		Author: fields[2],
		ISBN:   fields[3],
	}

	if len(fields) == bookLegacyFieldCount {
		available, err := strconv.ParseBool(fields[4])
		if err != nil {
			return types.Book{}, fmt.Errorf("legacy available flag: %w", err)
		}
		b.Stock = 1
		if available {
			b.AvailableStock = 1
		}
		return b, nil
	}

	stock, err := strconv.Atoi(fields[4])
	if err != nil {
		return types.Book{}, fmt.Errorf("stock: %w", err)
	}
	availableStock, err := strconv.Atoi(fields[5])
	if err != nil {
		return types.Book{}, fmt.Errorf("available stock: %w", err)
	}
	b.Stock = stock
	b.AvailableStock = availableStock

	return b, nil
}

// EncodeLoan renders a loan as one loans.txt line:
// id|userId|bookId|loanDate|returnDate|active. An outstanding loan
// writes the literal "null" for its return date.
func EncodeLoan(l types.Loan) string {
	returnDate := nullToken
	if !l.ReturnDate.IsZero() {
		returnDate = l.ReturnDate.Format(time.DateOnly)
	}
	fields := []string{
		l.ID,
		l.UserID,
		l.BookID,
		encodeDate(l.LoanDate),
		returnDate,
		strconv.FormatBool(l.Active),
	}
	return strings.Join(fields, Delimiter)
}

// DecodeLoan parses one loans.txt line. The return date accepts the
// "null" token or the empty string as absent.
func DecodeLoan(line string) (types.Loan, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != loanFieldCount {
		return types.Loan{}, fmt.Errorf("loan line has %d fields, want %d", len(fields), loanFieldCount)
	}

	l := types.Loan{
		ID:     fields[0],
		UserID: fields[1],
		BookID: fields[2],
	}

	loanDate, err := time.Parse(time.DateOnly, fields[3])
	if err != nil {
		return types.Loan{}, fmt.Errorf("loan date: %w", err)
	}
	l.LoanDate = loanDate

	if fields[4] != nullToken && fields[4] != "" {
		returnDate, err := time.Parse(time.DateOnly, fields[4])
		if err != nil {
			return types.Loan{}, fmt.Errorf("return date: %w", err)
		}
		l.ReturnDate = returnDate
	}

	active, err := strconv.ParseBool(fields[5])
	if err != nil {
		return types.Loan{}, fmt.Errorf("active flag: %w", err)
	}
	l.Active = active

	return l, nil
}

// encodeDate renders a date as yyyy-MM-dd, or the empty string when absent.
func encodeDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

// decodeDate parses a yyyy-MM-dd field; the empty string means absent.
func decodeDate(field string) (time.Time, error) {
	if field == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, field)
}

// decodeLegacyDate parses a date field that may be either yyyy-MM-dd or
// the long-form Spanish text legacy files stored birth dates as.
func decodeLegacyDate(field string) (time.Time, error) {
	if field == "" {
		return time.Time{}, nil
	}
	if d, err := time.Parse(time.DateOnly, field); err == nil {
		return d, nil
	}
	return datetext.Parse(field)
}
