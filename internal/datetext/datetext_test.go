package datetext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		at   time.Time
		want string
	}{
		{
			name: "afternoon with minutes and seconds",
			date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			at:   time.Date(2026, 2, 10, 18, 20, 30, 0, time.UTC),
			want: "Diez de Febrero de 2026 siendo las seis y veinte con treinta segundos de la tarde",
		},
		{
			name: "morning on the hour",
			date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			at:   time.Date(2025, 1, 1, 9, 0, 1, 0, time.UTC),
			want: "Uno de Enero de 2025 siendo las nueve en punto con uno segundo de la mañana",
		},
		{
			name: "night at midnight hour",
			date: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			at:   time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC),
			want: "Treinta y uno de Diciembre de 2024 siendo las once y cincuenta y nueve con cero segundos de la noche",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.date, tt.at))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("recovers the calendar date and ignores the timestamp", func(t *testing.T) {
		got, err := Parse("Diez de Febrero de 2026 siendo las seis y veinte con treinta segundos de la tarde")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("bare date without timestamp", func(t *testing.T) {
		got, err := Parse("Veintitrés de Agosto de 1999")
		require.NoError(t, err)
		assert.Equal(t, time.Date(1999, 8, 23, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("case-insensitive day and month", func(t *testing.T) {
		got, err := Parse("veinte de enero de 2000")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2000, 1, 20, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("round-trips through Format", func(t *testing.T) {
		date := time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)
		got, err := Parse(Format(date, time.Date(2023, 7, 4, 11, 5, 9, 0, time.UTC)))
		require.NoError(t, err)
		assert.Equal(t, date, got)
	})

	tests := []struct {
		name string
		in   string
	}{
		{"empty string", ""},
		{"no de separators", "2026-02-10"},
		{"unknown day word", "Cuarenta de Febrero de 2026"},
		{"unknown month word", "Diez de Smarch de 2026"},
		{"non-numeric year", "Diez de Febrero de veintiséis"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			assert.ErrorIs(t, err, ErrUnparseable)
		})
	}
}
