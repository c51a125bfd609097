package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTemplate(t *testing.T) {
	tp := NewTemplate()

	data := struct {
		Username string
		Name     string
	}{
		Username: "alice",
		Name:     "Alice Example",
	}

	subject, plainBody, htmlBody, err := tp.ParseTemplate("welcome_email.html", data)
	assert.NoError(t, err)

	assert.Equal(t, "Welcome to Blogverse!", subject.String())
	assert.Contains(t, plainBody.String(), "Hi Alice Example")
	assert.Contains(t, plainBody.String(), "@alice")
	assert.Contains(t, htmlBody.String(), "<strong>@alice</strong>")
}

func TestParseTemplateUnknownFile(t *testing.T) {
	tp := NewTemplate()

	_, _, _, err := tp.ParseTemplate("missing.html", nil)
	assert.Error(t, err)
}
