package emailsvc

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/phoebuz/core"
	appfs "github.com/trezcool/phoebuz/fs"
	testutil "github.com/trezcool/phoebuz/tests"
)

var to = mail.Address{Name: "Alice", Address: "alice@example.com"}

func TestConsoleServiceMock(t *testing.T) {
	conf := testutil.NewConfig()
	logger := testutil.NewLogger()
	core.ParseEmailTemplates(appfs.FS, "templates/email", conf, logger)
	svc := NewConsoleServiceMock(conf, logger)

	svc.SendMessages(
		&core.EmailMessage{To: []mail.Address{to}, Subject: "plain", BodyStr: "hello"},
		&core.EmailMessage{Subject: "nobody", BodyStr: "lost"},
		&core.EmailMessage{To: []mail.Address{to}, Subject: "empty"},
		&core.EmailMessage{To: []mail.Address{to}, Subject: "unknown template", TemplateName: "nope"},
	)

	sent := svc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "plain", sent[0].Subject)
	assert.Equal(t, "hello", sent[0].TextContent)
	assert.Empty(t, sent[0].HTMLContent)
}

func TestConsoleService_send(t *testing.T) {
	conf := testutil.NewConfig()
	svc := consoleService{defaultFromEmail: conf.DefaultFromEmail, subjPrefix: "[x] ", disableOutput: true}
	err := svc.send(core.EmailMessage{To: []mail.Address{to}, TextContent: "a", HTMLContent: "<p>a</p>"})
	assert.NoError(t, err)
}

func TestSendgridService_prepare(t *testing.T) {
	conf := testutil.NewConfig()
	conf.DefaultFromEmail = mail.Address{Address: "noreply@example.com"}
	svc := NewSendgridService(conf, testutil.NewLogger()).(*sendgridService)
	assert.Equal(t, "Phoebuz", svc.from.Name)

	m := svc.prepare(core.EmailMessage{
		To:          []mail.Address{to},
		Bcc:         []mail.Address{{Address: "audit@example.com"}},
		Subject:     "Exam tomorrow: Math",
		TextContent: "text",
	})
	require.Len(t, m.Personalizations, 1)
	p := m.Personalizations[0]
	assert.Equal(t, "[Phoebuz] Exam tomorrow: Math", p.Subject)
	require.Len(t, p.To, 1)
	assert.Equal(t, "alice@example.com", p.To[0].Address)
	assert.Len(t, p.BCC, 1)
	require.Len(t, m.Content, 1, "no html part without html content")
	assert.Equal(t, "text/plain", m.Content[0].Type)
}
