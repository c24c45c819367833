package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	r := TemplateRenderer{}
	out := r.Render("Dear {{firstName}} {{lastName}}, welcome to {{branch}}.", map[string]string{
		"firstName": "Jane",
		"lastName":  "Wanjiru",
		"branch":    "Nakuru",
	})
	assert.Equal(t, "Dear Jane Wanjiru, welcome to Nakuru.", out)
}

func TestRenderUnmatchedPlaceholderIsEmpty(t *testing.T) {
	r := TemplateRenderer{}
	out := r.Render("Ref {{caseNumber}}, contact {{hrEmail}}.", map[string]string{
		"hrEmail": "hr@kechita.co.ke",
	})
	assert.Equal(t, "Ref , contact hr@kechita.co.ke.", out)
}

func TestRenderToleratesWhitespaceInsideBraces(t *testing.T) {
	r := TemplateRenderer{}
	out := r.Render("Hello {{ firstName }}!", map[string]string{"firstName": "Sam"})
	assert.Equal(t, "Hello Sam!", out)
}

func TestRenderLeavesPlainTextAlone(t *testing.T) {
	r := TemplateRenderer{}
	assert.Equal(t, "no placeholders here", r.Render("no placeholders here", nil))
}
