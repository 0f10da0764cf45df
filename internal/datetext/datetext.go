// Package datetext renders calendar dates as long-form Spanish text and
// parses that text back into dates. Historical data files stored user
// birth dates in this form ("Diez de Febrero de 2026 siendo las seis y
// veinte..."), so the decoder still needs to read it; the CLI uses the
// formatter for display.
package datetext

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseable is returned when a text date does not follow the
// "<day> de <month> de <year>" shape.
var ErrUnparseable = errors.New("unparseable text date")

var days = []string{
	"", "Uno", "Dos", "Tres", "Cuatro", "Cinco", "Seis", "Siete", "Ocho", "Nueve", "Diez",
	"Once", "Doce", "Trece", "Catorce", "Quince", "Dieciséis", "Diecisiete", "Dieciocho",
	"Diecinueve", "Veinte", "Veintiuno", "Veintidós", "Veintitrés", "Veinticuatro", "Veinticinco",
	"Veintiséis", "Veintisiete", "Veintiocho", "Veintinueve", "Treinta", "Treinta y uno",
}

var months = []string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var hours = []string{
	"doce", "una", "dos", "tres", "cuatro", "cinco", "seis",
	"siete", "ocho", "nueve", "diez", "once", "doce",
}

var minutes = []string{
	"en punto", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve", "diez",
	"once", "doce", "trece", "catorce", "quince", "dieciséis", "diecisiete", "dieciocho", "diecinueve",
	"veinte", "veintiuno", "veintidós", "veintitrés", "veinticuatro", "veinticinco", "veintiséis",
	"veintisiete", "veintiocho", "veintinueve", "treinta", "treinta y uno", "treinta y dos",
	"treinta y tres", "treinta y cuatro", "treinta y cinco", "treinta y seis", "treinta y siete",
	"treinta y ocho", "treinta y nueve", "cuarenta", "cuarenta y uno", "cuarenta y dos",
	"cuarenta y tres", "cuarenta y cuatro", "cuarenta y cinco", "cuarenta y seis", "cuarenta y siete",
	"cuarenta y ocho", "cuarenta y nueve", "cincuenta", "cincuenta y uno", "cincuenta y dos",
	"cincuenta y tres", "cincuenta y cuatro", "cincuenta y cinco", "cincuenta y seis",
	"cincuenta y siete", "cincuenta y ocho", "cincuenta y nueve",
}

// Format renders date as long Spanish text, with the clock reading taken
// from at. Example: "Diez de Febrero de 2026 siendo las seis y veinte con
// treinta segundos de la tarde".
func Format(date time.Time, at time.Time) string {
	var sb strings.Builder

	sb.WriteString(days[date.Day()])
	sb.WriteString(" de ")
	sb.WriteString(months[int(date.Month())])
	sb.WriteString(" de ")
	sb.WriteString(strconv.Itoa(date.Year()))

	hour24 := at.Hour()
	period := "de la mañana"
	switch {
	case hour24 >= 20:
		period = "de la noche"
	case hour24 >= 12:
		period = "de la tarde"
	}

	sb.WriteString(" siendo las ")
	sb.WriteString(hours[hour24%12])

	if m := at.Minute(); m == 0 {
		sb.WriteString(" ")
		sb.WriteString(minutes[0])
	} else {
		sb.WriteString(" y ")
		sb.WriteString(minutes[m])
	}

	s := at.Second()
	sb.WriteString(" con ")
	sb.WriteString(secondsText(s))
	sb.WriteString(" segundo")
	if s != 1 {
		sb.WriteString("s")
	}
	sb.WriteString(" ")
	sb.WriteString(period)

	return sb.String()
}

// FormatDate renders date with the current wall clock as the timestamp.
func FormatDate(date time.Time) string {
	return Format(date, time.Now())
}

func secondsText(n int) string {
	if n == 0 {
		return "cero"
	}
	if n < len(minutes) {
		return minutes[n]
	}
	return strconv.Itoa(n)
}

// Parse extracts the calendar date out of a long-form text date. The
// spoken timestamp after the year is ignored; only day, month, and year
// are recovered.
func Parse(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, ErrUnparseable
	}

	firstDe := strings.Index(text, " de ")
	if firstDe == -1 {
		return time.Time{}, ErrUnparseable
	}
	secondDe := strings.Index(text[firstDe+4:], " de ")
	if secondDe == -1 {
		return time.Time{}, ErrUnparseable
	}
	secondDe += firstDe + 4

	dayText := strings.TrimSpace(text[:firstDe])
	monthText := strings.TrimSpace(text[firstDe+4 : secondDe])
	rest := strings.TrimSpace(text[secondDe+4:])

	yearText, _, _ := strings.Cut(rest, " ")
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad year %q", ErrUnparseable, yearText)
	}

	day := lookupText(days, dayText)
	if day == -1 {
		return time.Time{}, fmt.Errorf("%w: bad day %q", ErrUnparseable, dayText)
	}
	month := lookupText(months, monthText)
	if month == -1 {
		return time.Time{}, fmt.Errorf("%w: bad month %q", ErrUnparseable, monthText)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// lookupText finds the 1-based index of want in table, ignoring case.
// Index 0 is a placeholder and never matches.
func lookupText(table []string, want string) int {
	for i := 1; i < len(table); i++ {
		if strings.EqualFold(table[i], want) {
			return i
		}
	}
	return -1
}
