package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
)

func TestRenderFormHiddenInputs(t *testing.T) {
	page, err := RenderForm(&model.RedirectForm{
		Action: "https://test.payu.in/_payment",
		Fields: []model.FormField{
			{Name: "key", Value: "merchant-key"},
			{Name: "amount", Value: "100"},
		},
	})
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, `action="https://test.payu.in/_payment"`)
	assert.Contains(t, html, `<input type="hidden" name="key" value="merchant-key">`)
	assert.Contains(t, html, `<input type="hidden" name="amount" value="100">`)
	assert.Contains(t, html, "document.forms[0].submit()")
	assert.Contains(t, html, "<noscript>")
}

func TestRenderFormEscapesValues(t *testing.T) {
	page, err := RenderForm(&model.RedirectForm{
		Action: "https://test.payu.in/_payment",
		Fields: []model.FormField{
			{Name: "productinfo", Value: `"><script>alert(1)</script>`},
		},
	})
	require.NoError(t, err)

	html := string(page)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}
