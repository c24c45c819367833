// Package notify holds the delivery and rendering collaborators. The core
// services only hand these structured inputs; document formatting and
// actual transport live outside this service.
package notify

import (
	"context"
	"regexp"

	"github.com/sirupsen/logrus"
)

// Mailer delivers a message to a single recipient. Failures are reported,
// never retried here; callers decide whether a failure matters.
type Mailer interface {
	SendMessage(ctx context.Context, to, subject, body string) error
}

// Renderer produces display text from a template and named variables.
type Renderer interface {
	Render(templateText string, vars map[string]string) string
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// TemplateRenderer substitutes {{name}} placeholders. Unmatched
// placeholders resolve to the empty string, never stay verbatim.
type TemplateRenderer struct{}

func (TemplateRenderer) Render(templateText string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(templateText, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		return vars[name]
	})
}

// LogMailer is the default Mailer: it only records the send. The real SMTP
// gateway is deployed as a separate collaborator.
type LogMailer struct {
	Log *logrus.Logger
}

func (m *LogMailer) SendMessage(ctx context.Context, to, subject, body string) error {
	m.Log.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("mail dispatched")
	return nil
}
