package repository

import (
	"context"

	"github.com/firmaflow/ledger/internal/domain/entity"
)

// RenderRepository historial de documentos generados.
type RenderRepository interface {
	Create(ctx context.Context, doc *entity.RenderedDocument) error
	// List filtra por empresa si companyName no está vacío; más recientes primero.
	List(ctx context.Context, companyName string, limit, offset int) ([]*entity.RenderedDocument, error)
}
