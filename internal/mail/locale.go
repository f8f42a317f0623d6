package mail

import (
	"fmt"
	"time"
)

// Notice bodies are written in Norwegian; dates follow nb_NO convention
// ("2. januar 2006"). The twelve month names are all the locale data the
// notices need.
var monthNames = [...]string{
	"januar", "februar", "mars", "april", "mai", "juni",
	"juli", "august", "september", "oktober", "november", "desember",
}

// MonthName returns the Norwegian name of the month.
func MonthName(m time.Month) string {
	return monthNames[m-1]
}

// FormatDate formats a date the way the notices spell it out, e.g.
// "2. januar 2006".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d. %s %d", t.Day(), MonthName(t.Month()), t.Year())
}
