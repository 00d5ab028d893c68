package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa los datos de una factura listos para renderizar.
// Los totales llegan precalculados desde la capa que produce los datos; el
// renderizador no los recalcula.
type Invoice struct {
	Number    string
	IssueDate time.Time
	DueDate   time.Time // cero = sin fecha de vencimiento
	Currency  string    // código ISO-4217 (NGN, USD, ...)
	Customer  InvoiceCustomer
	Items     []LineItem
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Tax       decimal.Decimal
	Shipping  decimal.Decimal
	Total     decimal.Decimal
	Notes     string
}

// InvoiceCustomer datos del cliente ("Bill To").
type InvoiceCustomer struct {
	Name    string
	Address string
	City    string
	Phone   string
	Email   string
}

// ExpectedTotal devuelve subtotal - descuento + impuesto + envío.
func (i Invoice) ExpectedTotal() decimal.Decimal {
	return i.Subtotal.Sub(i.Discount).Add(i.Tax).Add(i.Shipping)
}

// TotalsConsistent indica si Total coincide con la suma de sus componentes.
func (i Invoice) TotalsConsistent() bool {
	return i.Total.Equal(i.ExpectedTotal())
}
