package repository

import (
	"context"

	"github.com/firmaflow/ledger/internal/domain/entity"
)

// TemplateRepository define el puerto de persistencia para los diseños
// personalizados. GetByID devuelve (nil, nil) si no existe.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *entity.InvoiceTemplate) error
	GetByID(ctx context.Context, id string) (*entity.InvoiceTemplate, error)
	// GetForUpdate como GetByID pero bloquea la fila; solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InvoiceTemplate, error)
	Update(ctx context.Context, tpl *entity.InvoiceTemplate) error
	Delete(ctx context.Context, id string) error
	ListByCompany(ctx context.Context, companyName string, limit, offset int) ([]*entity.InvoiceTemplate, error)
}
