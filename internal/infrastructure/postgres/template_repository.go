package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/firmaflow/ledger/internal/domain"
	"github.com/firmaflow/ledger/internal/domain/entity"
	"github.com/firmaflow/ledger/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

// TemplateRepo implementación de TemplateRepository (usable con pool o tx).
type TemplateRepo struct {
	q Querier
}

// NewTemplateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

const templateColumns = `id, company_name, name, accent, sections, created_at, updated_at`

// Create persiste un diseño nuevo. Un nombre repetido en la misma empresa
// devuelve domain.ErrDuplicate.
func (r *TemplateRepo) Create(ctx context.Context, tpl *entity.InvoiceTemplate) error {
	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = now
	}
	tpl.UpdatedAt = now

	query := `
		INSERT INTO invoice_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		tpl.ID, tpl.CompanyName, tpl.Name, nullIfEmpty(tpl.Accent),
		sectionsOrEmpty(tpl.Sections), tpl.CreatedAt, tpl.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Mark(errors.Wrapf(err, "template %q already exists", tpl.Name), domain.ErrDuplicate)
		}
		return errors.Wrap(err, "insert template")
	}
	return nil
}

// GetByID obtiene un diseño por ID; (nil, nil) si no existe.
func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*entity.InvoiceTemplate, error) {
	return r.get(ctx, `SELECT `+templateColumns+` FROM invoice_templates WHERE id = $1`, id)
}

// GetForUpdate obtiene el diseño bloqueando la fila hasta el fin de la transacción.
func (r *TemplateRepo) GetForUpdate(ctx context.Context, id string) (*entity.InvoiceTemplate, error) {
	return r.get(ctx, `SELECT `+templateColumns+` FROM invoice_templates WHERE id = $1 FOR UPDATE`, id)
}

func (r *TemplateRepo) get(ctx context.Context, query, id string) (*entity.InvoiceTemplate, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var (
		t      entity.InvoiceTemplate
		accent *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.CompanyName, &t.Name, &accent, &t.Sections, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get template")
	}
	t.Accent = derefString(accent)
	return &t, nil
}

// Update reemplaza nombre, acento y secciones.
func (r *TemplateRepo) Update(ctx context.Context, tpl *entity.InvoiceTemplate) error {
	tpl.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE invoice_templates
		SET name = $2, accent = $3, sections = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		tpl.ID, tpl.Name, nullIfEmpty(tpl.Accent), sectionsOrEmpty(tpl.Sections), tpl.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Mark(errors.Wrapf(err, "template %q already exists", tpl.Name), domain.ErrDuplicate)
		}
		return errors.Wrap(err, "update template")
	}
	if tag.RowsAffected() == 0 {
		return errors.Mark(errors.Newf("template %s not found", tpl.ID), domain.ErrNotFound)
	}
	return nil
}

// Delete elimina un diseño; domain.ErrNotFound si no existía.
func (r *TemplateRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Mark(errors.Newf("template %s not found", id), domain.ErrNotFound)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM invoice_templates WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete template")
	}
	if tag.RowsAffected() == 0 {
		return errors.Mark(errors.Newf("template %s not found", id), domain.ErrNotFound)
	}
	return nil
}

// ListByCompany lista los diseños de una empresa ordenados por nombre.
func (r *TemplateRepo) ListByCompany(ctx context.Context, companyName string, limit, offset int) ([]*entity.InvoiceTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM invoice_templates
		WHERE company_name = $1
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyName, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "list templates")
	}
	defer rows.Close()

	var list []*entity.InvoiceTemplate
	for rows.Next() {
		var (
			t      entity.InvoiceTemplate
			accent *string
		)
		if err := rows.Scan(&t.ID, &t.CompanyName, &t.Name, &accent, &t.Sections, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "scan template")
		}
		t.Accent = derefString(accent)
		list = append(list, &t)
	}
	return list, rows.Err()
}

func sectionsOrEmpty(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("[]")
	}
	return raw
}
