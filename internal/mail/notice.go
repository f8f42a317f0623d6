package mail

import (
	"fmt"
	"strings"
	"text/template"
)

// The notice bodies. Wording is what the members have been getting for
// years; change it only together with the board.

var invoiceTemplate = template.Must(template.New("invoice").Parse(`Dato: {{.Today}}
Medlemskap, {{.Month}}

Betalingsinformasjon:

  {{.FullName}}

Betalingsfrist:

  {{.PayBy}}

Mottaker:

  Bitraf
  Darres gate 24
  0175 OSLO

Beløp:

  {{.Amount}} kr

Kontonummer:

  1503 273 5581

Takk for at du betaler medlemsavgift!  Bitraf er avhengig av medlemsavgift for
å betale husleie og å kjøpe nødvendig utstyr.

For å endre ditt medlemskap, gå til

  {{.MemberURL}}
`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`Dato: {{.Today}}
Medlemskap, {{.Month}}

Betalingsinformasjon:

  {{.FullName}}

Mottaker:

  Bitraf
  Darres gate 24
  0175 OSLO

Beløp:

  {{.Amount}} kr

Kontonummer:

  1503 273 5581

Dette er din første medlemsfaktura, så velkommen til Bitraf!  Takk for at du
betaler medlemsavgift!  Bitraf er avhengig av medlemsavgift for å betale
husleie og å kjøpe nødvendig utstyr.

For å se detaljer om ditt medlemskap, gå til

  {{.MemberURL}}
`))

var reminderTemplate = template.Must(template.New("reminder").Parse(`Dato: {{.Today}}
Medlemsavgift for {{.FullName}}

Dette er en påminnelse for en tidligere faktura med
betalingsfrist {{.OriginalPayBy}} som vi ikke har registrert
noen betaling for.

Betalingsinformasjon: {{.UserName}}
Betalingsfrist: snarest
Mottaker: Bitraf, Darres gate 24, 0175 Oslo
Beløp: {{.Amount}} kr
Kontonummer: 15032735581

Hvis du ønsker å si opp medlemskapet i Bitraf, svar på denne e-posten.
`))

var balanceTemplate = template.Must(template.New("balance").Parse(`Hei!

Du skylder Bitraf kr {{.Balance}}.  Dette skyldes at du har handlet for mer
penger enn du har satt inn.  {{.Approach}} inn penger på kontonummer

  1503 273 5581

med betalingsinformasjon

  {{.UserName}}

Selv om du betaler nå risikerer du å få denne meldingen flere ganger fordi
mottakerkontoen ikke blir sjekket.  Ikke klag før tredje gang.

Beste hilsen,
p2k12-billing nag-negative-balance
`))

const (
	softApproach   = "Du kan for eksempel løse dette ved å handle ting\nog putte dem inn i kjøleskapet, eller ved å sette"
	urgentApproach = "Du må betale nå, fordi du har brukt mer\nkreditt enn vi tillater, sett"
)

// InvoiceData fills the monthly dues notice.
type InvoiceData struct {
	Today     string
	Month     string
	FullName  string
	PayBy     string
	Amount    string
	MemberURL string
}

// WelcomeData fills the first-invoice notice for a new member.
type WelcomeData struct {
	Today     string
	Month     string
	FullName  string
	Amount    string
	MemberURL string
}

// ReminderData fills the overdue-invoice reminder. OriginalPayBy is the
// pay-by date of the invoice being reminded about; payment is due
// immediately.
type ReminderData struct {
	Today         string
	FullName      string
	UserName      string
	OriginalPayBy string
	Amount        string
}

// BalanceData fills the negative-balance nag. Urgent switches to the
// stern wording for members past the credit thresholds.
type BalanceData struct {
	Balance  string
	UserName string
	Urgent   bool
}

func RenderInvoice(d InvoiceData) (string, error) {
	return render(invoiceTemplate, d)
}

func RenderWelcome(d WelcomeData) (string, error) {
	return render(welcomeTemplate, d)
}

func RenderReminder(d ReminderData) (string, error) {
	return render(reminderTemplate, d)
}

func RenderBalanceNag(d BalanceData) (string, error) {
	approach := softApproach
	if d.Urgent {
		approach = urgentApproach
	}
	return render(balanceTemplate, struct {
		Balance  string
		UserName string
		Approach string
	}{d.Balance, d.UserName, approach})
}

func render(t *template.Template, data any) (string, error) {
	var buf strings.Builder
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s notice: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// DuesSubject is the subject of both the monthly dues and the welcome
// notice, carrying the billing month.
func DuesSubject(month string) string {
	return fmt.Sprintf("[Bitraf] Medlemskap, %s", month)
}

// ReminderSubject is the subject of overdue-invoice reminders.
func ReminderSubject() string {
	return "[Bitraf] Påminnelse, medlemsavgift"
}

// BalanceSubject is the subject of negative-balance nags.
func BalanceSubject() string {
	return "p2k12: Du har negativ pengebeholdning"
}
