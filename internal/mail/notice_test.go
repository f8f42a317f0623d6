package mail

import (
	"strings"
	"testing"
)

func TestRenderInvoice(t *testing.T) {
	body, err := RenderInvoice(InvoiceData{
		Today:     "29. august 2026",
		Month:     "august",
		FullName:  "Ola Nordmann",
		PayBy:     "5. september 2026",
		Amount:    "500",
		MemberURL: "http://p2k12.bitraf.no/my/42/d054c1a7/",
	})
	if err != nil {
		t.Fatalf("render invoice: %v", err)
	}

	for _, want := range []string{
		"Dato: 29. august 2026",
		"Medlemskap, august",
		"Ola Nordmann",
		"5. september 2026",
		"500 kr",
		"1503 273 5581",
		"http://p2k12.bitraf.no/my/42/d054c1a7/",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("invoice notice missing %q:\n%s", want, body)
		}
	}
}

func TestRenderWelcome(t *testing.T) {
	body, err := RenderWelcome(WelcomeData{
		Today:     "29. august 2026",
		Month:     "august",
		FullName:  "Kari Nordmann",
		Amount:    "300",
		MemberURL: "http://p2k12.bitraf.no/my/43/dff30f5d/",
	})
	if err != nil {
		t.Fatalf("render welcome: %v", err)
	}

	if !strings.Contains(body, "velkommen til Bitraf") {
		t.Errorf("welcome notice missing welcome line:\n%s", body)
	}
	if !strings.Contains(body, "300 kr") {
		t.Errorf("welcome notice missing amount:\n%s", body)
	}
}

func TestRenderReminder(t *testing.T) {
	body, err := RenderReminder(ReminderData{
		Today:         "29. august 2026",
		FullName:      "Ola Nordmann",
		UserName:      "ola",
		OriginalPayBy: "20. august 2026",
		Amount:        "500",
	})
	if err != nil {
		t.Fatalf("render reminder: %v", err)
	}

	if !strings.Contains(body, "betalingsfrist 20. august 2026") {
		t.Errorf("reminder missing original pay-by date:\n%s", body)
	}
	if !strings.Contains(body, "Betalingsfrist: snarest") {
		t.Errorf("reminder should ask for immediate payment:\n%s", body)
	}
	if !strings.Contains(body, "Betalingsinformasjon: ola") {
		t.Errorf("reminder missing payment reference:\n%s", body)
	}
}

func TestRenderBalanceNagWording(t *testing.T) {
	soft, err := RenderBalanceNag(BalanceData{Balance: "150", UserName: "ola", Urgent: false})
	if err != nil {
		t.Fatalf("render soft nag: %v", err)
	}
	urgent, err := RenderBalanceNag(BalanceData{Balance: "1500", UserName: "ola", Urgent: true})
	if err != nil {
		t.Fatalf("render urgent nag: %v", err)
	}

	if !strings.Contains(soft, "Du kan for eksempel") {
		t.Errorf("soft nag missing soft wording:\n%s", soft)
	}
	if strings.Contains(soft, "Du må betale nå") {
		t.Errorf("soft nag contains urgent wording:\n%s", soft)
	}
	if !strings.Contains(urgent, "Du må betale nå") {
		t.Errorf("urgent nag missing urgent wording:\n%s", urgent)
	}
	if !strings.Contains(urgent, "Du skylder Bitraf kr 1500.") {
		t.Errorf("urgent nag missing balance:\n%s", urgent)
	}
}

func TestSubjects(t *testing.T) {
	if got := DuesSubject("august"); got != "[Bitraf] Medlemskap, august" {
		t.Errorf("DuesSubject = %q", got)
	}
	if got := ReminderSubject(); got != "[Bitraf] Påminnelse, medlemsavgift" {
		t.Errorf("ReminderSubject = %q", got)
	}
}
