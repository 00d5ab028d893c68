package entity

import "github.com/shopspring/decimal"

// LineItem representa una línea de detalle de la factura.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}
