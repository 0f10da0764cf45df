package types

// Book represents a title owned by the library, with a copy count.
// AvailableStock tracks the copies not currently bound to an active loan;
// the repository keeps 0 <= AvailableStock <= Stock at all times.
type Book struct {
	ID             string // Caller-assigned, unique among books.
	Title          string
	Author         string
	ISBN           string
	Stock          int // Total copies owned.
	AvailableStock int // Copies on the shelf right now.
}

// IsAvailable reports whether at least one copy can be loaned out.
func (b *Book) IsAvailable() bool {
	return b.AvailableStock > 0
}
