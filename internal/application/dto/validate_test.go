package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firmaflow/ledger/internal/application/dto"
)

func TestValidate_RenderInvoiceRequest(t *testing.T) {
	var req dto.RenderInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"company": {"name": "Acme", "email": "no-es-email"},
		"invoice": {"number": "", "currency": "NAIRA", "items": [{"description": ""}]},
		"accent": "blue",
		"template_id": "abc"
	}`), &req))

	err := dto.Validate(req)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "RenderInvoiceRequest.Company.Email: email")
	assert.Contains(t, msg, "RenderInvoiceRequest.Invoice.Number: required")
	assert.Contains(t, msg, "RenderInvoiceRequest.Invoice.Currency: len=3")
	assert.Contains(t, msg, "RenderInvoiceRequest.Invoice.Items[0].Description: required")
	assert.Contains(t, msg, "RenderInvoiceRequest.Accent: hexcolor")
	assert.Contains(t, msg, "RenderInvoiceRequest.TemplateID: uuid")
}

func TestValidate_Valido(t *testing.T) {
	var req dto.RenderInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"company": {"name": "Acme"},
		"invoice": {"number": "INV-1", "currency": "usd", "subtotal": "10.50", "total": 10.5},
		"sections": [{"kind": "totals"}]
	}`), &req))

	assert.NoError(t, dto.Validate(req))
	assert.True(t, req.HasInlineSections())
	assert.Equal(t, "10.5", req.Invoice.Total.String())
}

func TestValidate_BatchVacio(t *testing.T) {
	assert.Error(t, dto.Validate(dto.BatchRenderRequest{}))
}
