package entity

import (
	"encoding/json"
	"time"
)

// InvoiceTemplate es un diseño de factura personalizado guardado por una empresa.
// Sections guarda el descriptor tal como lo envió el editor (arreglo JSON de secciones).
type InvoiceTemplate struct {
	ID          string
	CompanyName string
	Name        string
	Accent      string
	Sections    json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
