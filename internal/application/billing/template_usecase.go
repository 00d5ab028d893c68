package billing

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/firmaflow/ledger/internal/application/dto"
	"github.com/firmaflow/ledger/internal/domain"
	"github.com/firmaflow/ledger/internal/domain/entity"
	"github.com/firmaflow/ledger/internal/domain/repository"
	"github.com/firmaflow/ledger/internal/render"
)

// StoredDescriptor diseño guardado junto con su descriptor parseado.
type StoredDescriptor struct {
	Template   *entity.InvoiceTemplate
	Descriptor render.TemplateDescriptor
	Warnings   []render.Warning
}

// TemplateConfig parámetros del caso de uso de diseños.
type TemplateConfig struct {
	DefaultTemplate string
	CacheTTL        time.Duration
}

var _ DescriptorSource = (*TemplateUseCase)(nil)

// TemplateUseCase administra los diseños personalizados. Los descriptores
// parseados se guardan en caché por ID y se invalidan al modificar o borrar.
type TemplateUseCase struct {
	repo     repository.TemplateRepository
	tx       TxRunner
	cache    *cache.Cache
	fallback string
	log      zerolog.Logger
}

// NewTemplateUseCase construye el caso de uso inyectando sus dependencias.
func NewTemplateUseCase(repo repository.TemplateRepository, tx TxRunner, cfg TemplateConfig, log zerolog.Logger) *TemplateUseCase {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	fallback := cfg.DefaultTemplate
	if _, ok := render.LookupTheme(fallback); !ok {
		fallback = render.DefaultTemplate
	}
	return &TemplateUseCase{
		repo:     repo,
		tx:       tx,
		cache:    cache.New(ttl, 2*ttl),
		fallback: fallback,
		log:      log.With().Str("component", "templates").Logger(),
	}
}

// Create valida las secciones y guarda el diseño.
//
// Retorna:
//   - domain.ErrInvalidInput si el body o las secciones no son válidos.
//   - domain.ErrDuplicate    si la empresa ya tiene un diseño con ese nombre.
func (uc *TemplateUseCase) Create(ctx context.Context, req dto.TemplateRequest) (*dto.TemplateResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "template"), domain.ErrInvalidInput)
	}
	warnings, err := validateSections(req.Sections)
	if err != nil {
		return nil, err
	}

	tpl := &entity.InvoiceTemplate{
		CompanyName: strings.TrimSpace(req.CompanyName),
		Name:        strings.TrimSpace(req.Name),
		Accent:      strings.ToUpper(req.Accent),
		Sections:    req.Sections,
	}
	if err := uc.repo.Create(ctx, tpl); err != nil {
		return nil, err
	}
	uc.log.Info().Str("template_id", tpl.ID).Str("company", tpl.CompanyName).Msg("diseño creado")
	resp := toTemplateResponse(tpl, warnings)
	return &resp, nil
}

// Get devuelve un diseño; domain.ErrNotFound si no existe.
func (uc *TemplateUseCase) Get(ctx context.Context, id string) (*dto.TemplateResponse, error) {
	sd, err := uc.Descriptor(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTemplateResponse(sd.Template, sd.Warnings)
	return &resp, nil
}

// List diseños de una empresa.
func (uc *TemplateUseCase) List(ctx context.Context, companyName string, page dto.PageRequest) (*dto.ListTemplatesResponse, error) {
	if strings.TrimSpace(companyName) == "" {
		return nil, domain.InvalidInputf("company es obligatorio")
	}
	page.DefaultPage()
	if err := dto.Validate(page); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "page"), domain.ErrInvalidInput)
	}
	list, err := uc.repo.ListByCompany(ctx, companyName, page.Limit, page.Offset)
	if err != nil {
		return nil, errors.Wrap(err, "templates: listar")
	}
	return &dto.ListTemplatesResponse{
		Items: lo.Map(list, func(t *entity.InvoiceTemplate, _ int) dto.TemplateResponse {
			return toTemplateResponse(t, nil)
		}),
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update reemplaza nombre, acento y secciones dentro de una transacción.
// La empresa dueña del diseño no puede cambiar (domain.ErrConflict).
func (uc *TemplateUseCase) Update(ctx context.Context, id string, req dto.TemplateRequest) (*dto.TemplateResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "template"), domain.ErrInvalidInput)
	}
	warnings, err := validateSections(req.Sections)
	if err != nil {
		return nil, err
	}

	var updated *entity.InvoiceTemplate
	err = uc.tx.Run(ctx, func(templates repository.TemplateRepository, _ repository.RenderRepository) error {
		current, err := templates.GetForUpdate(ctx, id)
		if err != nil {
			return errors.Wrap(err, "templates: obtener")
		}
		if current == nil {
			return errors.Mark(errors.Newf("template %s not found", id), domain.ErrNotFound)
		}
		if current.CompanyName != strings.TrimSpace(req.CompanyName) {
			return errors.Mark(errors.Newf("template %s belongs to another company", id), domain.ErrConflict)
		}
		current.Name = strings.TrimSpace(req.Name)
		current.Accent = strings.ToUpper(req.Accent)
		current.Sections = req.Sections
		if err := templates.Update(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Delete(id)
	resp := toTemplateResponse(updated, warnings)
	return &resp, nil
}

// Delete elimina un diseño; domain.ErrNotFound si no existía.
func (uc *TemplateUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.Delete(id)
	uc.log.Info().Str("template_id", id).Msg("diseño eliminado")
	return nil
}

// Descriptor devuelve el diseño y su descriptor parseado, desde caché si es posible.
func (uc *TemplateUseCase) Descriptor(ctx context.Context, id string) (*StoredDescriptor, error) {
	if v, ok := uc.cache.Get(id); ok {
		return v.(*StoredDescriptor), nil
	}

	tpl, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "templates: obtener")
	}
	if tpl == nil {
		return nil, errors.Mark(errors.Newf("template %s not found", id), domain.ErrNotFound)
	}

	desc, warnings, err := render.ParseDescriptor(tpl.Sections)
	if err != nil {
		// Guardado antes de validar o editado a mano: se renderiza como vacío.
		uc.log.Warn().Err(err).Str("template_id", id).Msg("descriptor guardado ilegible")
		desc = render.TemplateDescriptor{}
	}
	sd := &StoredDescriptor{Template: tpl, Descriptor: desc, Warnings: warnings}
	uc.cache.SetDefault(id, sd)
	return sd, nil
}

// FixedTemplates lista los diseños fijos.
func (uc *TemplateUseCase) FixedTemplates() dto.FixedTemplatesResponse {
	return dto.FixedTemplatesResponse{Default: uc.fallback, Templates: render.Themes()}
}

// validateSections parsea el descriptor. Tipos desconocidos o elementos mal
// formados se rechazan; props inválidas se aceptan y se informan.
func validateSections(raw []byte) ([]render.Warning, error) {
	_, warnings, err := render.ParseDescriptor(raw)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "sections"), domain.ErrInvalidInput)
	}
	rejected := lo.Filter(warnings, func(w render.Warning, _ int) bool {
		return w.Reason != render.ReasonInvalidProps
	})
	if len(rejected) > 0 {
		msgs := lo.Map(rejected, func(w render.Warning, _ int) string { return w.String() })
		return nil, domain.InvalidInputf("sections: %s", strings.Join(msgs, "; "))
	}
	return warnings, nil
}

func toTemplateResponse(t *entity.InvoiceTemplate, warnings []render.Warning) dto.TemplateResponse {
	return dto.TemplateResponse{
		ID:          t.ID,
		CompanyName: t.CompanyName,
		Name:        t.Name,
		Accent:      t.Accent,
		Sections:    t.Sections,
		Warnings:    warnings,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
