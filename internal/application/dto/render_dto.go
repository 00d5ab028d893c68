package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/firmaflow/ledger/internal/render"
)

// RenderInvoiceRequest body para POST /api/invoices/pdf y /api/invoices/preview.
//
// El modo se elige así: template_id (diseño guardado) → sections (diseño en
// línea) → template (nombre de diseño fijo, por defecto el configurado).
type RenderInvoiceRequest struct {
	Company         CompanyInput    `json:"company" validate:"required"`
	Invoice         InvoiceInput    `json:"invoice" validate:"required"`
	Template        string          `json:"template,omitempty" validate:"omitempty,max=40"`
	TemplateID      string          `json:"template_id,omitempty" validate:"omitempty,uuid"`
	Sections        json.RawMessage `json:"sections,omitempty" swaggertype:"array,object"`
	Accent          string          `json:"accent,omitempty" validate:"omitempty,hexcolor"`
	ShowPaymentInfo *bool           `json:"show_payment_info,omitempty"`
}

// HasInlineSections indica si la petición trae un descriptor en línea.
func (r RenderInvoiceRequest) HasInlineSections() bool {
	s := string(r.Sections)
	return s != "" && s != "null"
}

// CompanyInput empresa emisora. Logo en base64 o data URL (PNG/JPEG).
type CompanyInput struct {
	Name    string     `json:"name" validate:"required,min=1,max=200"`
	Address string     `json:"address,omitempty" validate:"omitempty,max=300"`
	City    string     `json:"city,omitempty" validate:"omitempty,max=100"`
	State   string     `json:"state,omitempty" validate:"omitempty,max=100"`
	Phone   string     `json:"phone,omitempty" validate:"omitempty,max=40"`
	Email   string     `json:"email,omitempty" validate:"omitempty,email"`
	Logo    string     `json:"logo,omitempty"`
	Bank    *BankInput `json:"bank,omitempty"`
}

// BankInput datos bancarios para la sección de pago.
type BankInput struct {
	BankName      string `json:"bank_name,omitempty" validate:"omitempty,max=120"`
	AccountName   string `json:"account_name,omitempty" validate:"omitempty,max=200"`
	AccountNumber string `json:"account_number,omitempty" validate:"omitempty,max=40"`
}

// InvoiceInput datos de la factura. Los totales llegan calculados.
// Fechas en formato 2006-01-02 o RFC3339.
type InvoiceInput struct {
	Number    string          `json:"number" validate:"required,min=1,max=64"`
	IssueDate string          `json:"issue_date,omitempty"`
	DueDate   string          `json:"due_date,omitempty"`
	Currency  string          `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	Customer  CustomerInput   `json:"customer"`
	Items     []LineItemInput `json:"items" validate:"omitempty,dive"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	Notes     string          `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// CustomerInput cliente ("Bill To").
type CustomerInput struct {
	Name    string `json:"name,omitempty" validate:"omitempty,max=200"`
	Address string `json:"address,omitempty" validate:"omitempty,max=300"`
	City    string `json:"city,omitempty" validate:"omitempty,max=100"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}

// LineItemInput línea de la factura.
type LineItemInput struct {
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// BatchRenderRequest body para POST /api/invoices/pdf/batch.
type BatchRenderRequest struct {
	Invoices []RenderInvoiceRequest `json:"invoices" validate:"required,min=1,dive"`
}

// PreviewResponse árbol del documento sin imprimir.
type PreviewResponse struct {
	Document *render.Document `json:"document"`
	Warnings []render.Warning `json:"warnings,omitempty"`
}

// RenderRecordResponse registro del historial.
type RenderRecordResponse struct {
	ID            string          `json:"id"`
	CompanyName   string          `json:"company_name"`
	InvoiceNumber string          `json:"invoice_number"`
	Mode          string          `json:"mode"`
	Template      string          `json:"template"`
	Pages         int             `json:"pages"`
	Currency      string          `json:"currency"`
	Total         decimal.Decimal `json:"total"`
	Checksum      string          `json:"checksum"`
	SizeBytes     int             `json:"size_bytes"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ListRendersResponse historial paginado.
type ListRendersResponse struct {
	Items []RenderRecordResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
