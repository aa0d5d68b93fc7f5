package payment

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
	apperrors "github.com/DIVIJ08070/doctor-appointment-app/pkg/errors"
)

// The hosted gateway expects a browser-submitted POST, not an API call.
// The gateway renders this page and the browser performs the full-page
// navigation on load; this is the terminal step of the booking flow.
var formTemplate = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html>
<head><title>Redirecting to payment…</title></head>
<body onload="document.forms[0].submit()">
<p>Redirecting you to the payment page…</p>
<form method="POST" action="{{.Action}}">
{{- range .Fields}}
<input type="hidden" name="{{.Name}}" value="{{.Value}}">
{{- end}}
<noscript><button type="submit">Continue to payment</button></noscript>
</form>
</body>
</html>
`))

// RenderForm produces the auto-submitting HTML page for a redirect form.
func RenderForm(form *model.RedirectForm) ([]byte, error) {
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, form); err != nil {
		return nil, fmt.Errorf("failed to render redirect form: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderRedirect renders the form as the browser-facing redirect page.
func (s *Service) RenderRedirect(form *model.RedirectForm) ([]byte, error) {
	page, err := RenderForm(form)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return page, nil
}
