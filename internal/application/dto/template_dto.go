package dto

import (
	"encoding/json"
	"time"

	"github.com/firmaflow/ledger/internal/render"
)

// TemplateRequest body para POST /api/templates y PUT /api/templates/:id.
type TemplateRequest struct {
	CompanyName string          `json:"company_name" validate:"required,min=1,max=200"`
	Name        string          `json:"name" validate:"required,min=1,max=120"`
	Accent      string          `json:"accent,omitempty" validate:"omitempty,hexcolor"`
	Sections    json.RawMessage `json:"sections" validate:"required" swaggertype:"array,object"`
}

// TemplateResponse diseño guardado. Warnings lista las props que se
// reemplazaron por valores por defecto al validar.
type TemplateResponse struct {
	ID          string           `json:"id"`
	CompanyName string           `json:"company_name"`
	Name        string           `json:"name"`
	Accent      string           `json:"accent,omitempty"`
	Sections    json.RawMessage  `json:"sections" swaggertype:"array,object"`
	Warnings    []render.Warning `json:"warnings,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ListTemplatesResponse diseños de una empresa.
type ListTemplatesResponse struct {
	Items []TemplateResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// FixedTemplatesResponse diseños fijos disponibles.
type FixedTemplatesResponse struct {
	Default   string         `json:"default"`
	Templates []render.Theme `json:"templates"`
}
