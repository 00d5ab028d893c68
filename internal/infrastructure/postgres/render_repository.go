package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/firmaflow/ledger/internal/domain/entity"
	"github.com/firmaflow/ledger/internal/domain/repository"
)

var _ repository.RenderRepository = (*RenderRepo)(nil)

// RenderRepo historial de renderizado sobre PostgreSQL.
type RenderRepo struct {
	q Querier
}

// NewRenderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRenderRepository(q Querier) *RenderRepo {
	return &RenderRepo{q: q}
}

// Create registra un documento generado.
func (r *RenderRepo) Create(ctx context.Context, doc *entity.RenderedDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO rendered_documents (id, company_name, invoice_number, mode, template, pages, currency, total, checksum, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.CompanyName, doc.InvoiceNumber, doc.Mode, doc.Template,
		doc.Pages, doc.Currency, doc.Total, doc.Checksum, doc.SizeBytes, doc.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "insert rendered document")
	}
	return nil
}

// List devuelve el historial, más recientes primero.
func (r *RenderRepo) List(ctx context.Context, companyName string, limit, offset int) ([]*entity.RenderedDocument, error) {
	query := `
		SELECT id, company_name, invoice_number, mode, template, pages, currency, total, checksum, size_bytes, created_at
		FROM rendered_documents
		WHERE ($1 = '' OR company_name = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyName, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "list rendered documents")
	}
	defer rows.Close()

	var list []*entity.RenderedDocument
	for rows.Next() {
		var d entity.RenderedDocument
		if err := rows.Scan(
			&d.ID, &d.CompanyName, &d.InvoiceNumber, &d.Mode, &d.Template,
			&d.Pages, &d.Currency, &d.Total, &d.Checksum, &d.SizeBytes, &d.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan rendered document")
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
