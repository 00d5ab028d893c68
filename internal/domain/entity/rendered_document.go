package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modos de composición registrados en el historial.
const (
	RenderModeFixed  = "fixed"
	RenderModeCustom = "custom"
)

// RenderedDocument registro de un PDF generado (historial de renderizado).
type RenderedDocument struct {
	ID            string
	CompanyName   string
	InvoiceNumber string
	Mode          string // ver constantes RenderMode*
	Template      string // nombre del diseño fijo o ID del diseño guardado
	Pages         int
	Currency      string
	Total         decimal.Decimal
	Checksum      string // SHA-256 hex del PDF
	SizeBytes     int
	CreatedAt     time.Time
}
