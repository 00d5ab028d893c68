package render

import (
	"github.com/shopspring/decimal"

	"github.com/firmaflow/ledger/internal/domain/entity"
)

// RenderContext agrupa los datos de solo lectura que reciben todos los
// renderizadores de sección. Se crea una vez por documento y no se modifica.
type RenderContext struct {
	company         entity.Company
	invoice         entity.Invoice
	accent          string // vacío si el llamador no envió un color válido
	showPaymentInfo bool
}

// NewRenderContext construye el contexto. Un acento vacío o inválido queda sin
// definir: los diseños fijos usan el suyo y el resto BrandColor.
func NewRenderContext(company entity.Company, invoice entity.Invoice, accent string, showPaymentInfo bool) *RenderContext {
	return &RenderContext{
		company:         company,
		invoice:         invoice,
		accent:          sanitizeColor(accent, ""),
		showPaymentInfo: showPaymentInfo,
	}
}

func (rc *RenderContext) Company() entity.Company { return rc.company }
func (rc *RenderContext) Invoice() entity.Invoice { return rc.invoice }
func (rc *RenderContext) ShowPaymentInfo() bool   { return rc.showPaymentInfo }

// Accent color de acento efectivo; BrandColor si no se definió.
func (rc *RenderContext) Accent() string { return AccentOrDefault(rc.accent) }

// HasAccent indica si el llamador envió un acento válido.
func (rc *RenderContext) HasAccent() bool { return rc.accent != "" }

// withDefaultAccent devuelve una copia con accent cuando el llamador no
// definió uno; el contexto original no se modifica.
func (rc *RenderContext) withDefaultAccent(accent string) *RenderContext {
	if rc.HasAccent() {
		return rc
	}
	cp := *rc
	cp.accent = sanitizeColor(accent, "")
	return &cp
}

// Money formatea un monto con la moneda de la factura.
func (rc *RenderContext) Money(amount decimal.Decimal) string {
	return FormatCurrency(amount, rc.invoice.Currency)
}
