package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRawHTMLBody(t *testing.T) {
	m := To("buyer@x.com").
		Subject("Booking confirmed").
		Body("<h1>See you at the pickup point</h1>")

	raw := string(m.buildRaw("HomeTech <no-reply@hometech.app>"))

	assert.Contains(t, raw, "To: buyer@x.com\r\n")
	assert.Contains(t, raw, "Subject: Booking confirmed\r\n")
	assert.Contains(t, raw, `Content-Type: text/html; charset="UTF-8"`)
	assert.Contains(t, raw, "<h1>See you at the pickup point</h1>")
}

func TestTextSwitchesToPlainBody(t *testing.T) {
	m := To("buyer@x.com").
		Subject("Payment receipt").
		Text("We received your payment.")

	raw := string(m.buildRaw("HomeTech <no-reply@hometech.app>"))

	assert.Contains(t, raw, `Content-Type: text/plain; charset="UTF-8"`)
	assert.Contains(t, raw, "We received your payment.")
}

func TestUseConfigOverridesSMTP(t *testing.T) {
	override := SMTP{
		Host:     "smtp.other.test",
		Port:     "587",
		Username: "mailer",
		Password: "secret",
		From:     "alerts@other.test",
		FromName: "Alerts",
	}

	m := To("a@x.com").Subject("s").Body("b").UseConfig(override)

	assert.Equal(t, override, m.smtpCfg)
}

func TestSendWithoutCredentialsFails(t *testing.T) {
	m := To("a@x.com").
		Subject("s").
		Body("b").
		UseConfig(SMTP{Host: "smtp.test", Port: "587"})

	err := m.Send()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_USERNAME")
}

func TestToAddressesMultipleRecipients(t *testing.T) {
	m := To("a@x.com", "b@x.com").Subject("s").Body("b")

	raw := string(m.buildRaw("HomeTech <no-reply@hometech.app>"))

	assert.Contains(t, raw, "To: a@x.com, b@x.com\r\n")
}
