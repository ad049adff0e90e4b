package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTemplatesRenderCode(t *testing.T) {
	tm := NewTemplateManager()

	for _, name := range []string{TemplateVerifyEmail, TemplateResetPassword} {
		body, err := tm.Render(name, TemplateData{
			"FullName": "Alice Smith",
			"Code":     "4821",
		})
		require.NoError(t, err, "template %s", name)
		assert.Contains(t, body, "Alice Smith")
		assert.Contains(t, body, "4821")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	tm := NewTemplateManager()

	_, err := tm.Render("no_such_template", TemplateData{})
	assert.Error(t, err)
}

func TestAddTemplateOverrides(t *testing.T) {
	tm := NewTemplateManager()
	require.NoError(t, tm.AddTemplate(TemplateVerifyEmail, "code: {{.Code}}"))

	body, err := tm.Render(TemplateVerifyEmail, TemplateData{"Code": "1111"})
	require.NoError(t, err)
	assert.Equal(t, "code: 1111", body)
}
