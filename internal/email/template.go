package email

import (
	"fmt"

	"github.com/osteele/liquid"
)

// ConfirmationSubject is the subject line of the double opt-in email.
const ConfirmationSubject = "Confirm your subscription"

const confirmationTemplate = `<p>Welcome{% if name != "" %}, {{ name }}{% endif %}!</p>
<p>Visit <a href="{{ confirmation_link }}">{{ confirmation_link }}</a> to confirm your subscription.</p>
<p>If you didn't sign up, you can ignore this email.</p>`

// Templates renders outbound email bodies. Templates are parsed once at
// construction; rendering is safe for concurrent use.
type Templates struct {
	confirmation *liquid.Template
}

// NewTemplates parses the built-in templates.
func NewTemplates() (*Templates, error) {
	engine := liquid.NewEngine()

	confirmation, err := engine.ParseString(confirmationTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing confirmation template: %w", err)
	}

	return &Templates{confirmation: confirmation}, nil
}

// RenderConfirmation produces the HTML body of the confirmation email.
// confirmationLink must be the full URL embedding the subscriber's token.
func (t *Templates) RenderConfirmation(name, confirmationLink string) (string, error) {
	out, err := t.confirmation.RenderString(map[string]interface{}{
		"name":              name,
		"confirmation_link": confirmationLink,
	})
	if err != nil {
		return "", fmt.Errorf("rendering confirmation template: %w", err)
	}
	return out, nil
}
