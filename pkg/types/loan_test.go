package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanReturn(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("active loan closes and records the date", func(t *testing.T) {
		loan := Loan{ID: "L-1", UserID: "U1", BookID: "B1", Active: true}
		require.NoError(t, loan.Return(date))
		assert.False(t, loan.Active)
		assert.Equal(t, date, loan.ReturnDate)
	})

	t.Run("returned loan is terminal", func(t *testing.T) {
		loan := Loan{ID: "L-1", Active: true}
		require.NoError(t, loan.Return(date))

		err := loan.Return(date.AddDate(0, 0, 1))
		assert.ErrorIs(t, err, ErrLoanClosed)
		// No further state change.
		assert.Equal(t, date, loan.ReturnDate)
		assert.False(t, loan.Active)
	})
}

func TestBookIsAvailable(t *testing.T) {
	tests := []struct {
		name      string
		available int
		want      bool
	}{
		{"copies on the shelf", 2, true},
		{"last copy", 1, true},
		{"all copies out", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Book{ID: "B1", Stock: 2, AvailableStock: tt.available}
			assert.Equal(t, tt.want, b.IsAvailable())
		})
	}
}
