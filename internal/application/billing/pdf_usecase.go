package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"

	"github.com/firmaflow/ledger/internal/application/dto"
	"github.com/firmaflow/ledger/internal/domain"
	"github.com/firmaflow/ledger/internal/domain/entity"
	"github.com/firmaflow/ledger/internal/domain/repository"
	"github.com/firmaflow/ledger/internal/render"
)

// RenderDefaults valores usados cuando la petición no los indica.
type RenderDefaults struct {
	Template         string
	Accent           string
	BatchWorkers     int
	BatchMaxInvoices int
}

// PDFUseCase compone e imprime facturas y registra cada PDF generado.
type PDFUseCase struct {
	composer  *render.Composer
	generator DocumentPDFGenerator
	templates DescriptorSource
	renders   repository.RenderRepository // nil = sin historial
	archiver  Archiver
	defaults  RenderDefaults
	log       zerolog.Logger
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
// templates y renders pueden ser nil (uso sin base de datos).
func NewPDFUseCase(
	composer *render.Composer,
	generator DocumentPDFGenerator,
	templates DescriptorSource,
	renders repository.RenderRepository,
	archiver Archiver,
	defaults RenderDefaults,
	log zerolog.Logger,
) *PDFUseCase {
	if defaults.BatchWorkers <= 0 {
		defaults.BatchWorkers = 1
	}
	if defaults.BatchMaxInvoices <= 0 {
		defaults.BatchMaxInvoices = 100
	}
	return &PDFUseCase{
		composer:  composer,
		generator: generator,
		templates: templates,
		renders:   renders,
		archiver:  archiver,
		defaults:  defaults,
		log:       log.With().Str("component", "billing").Logger(),
	}
}

// composed resultado de la composición, antes de imprimir.
type composed struct {
	doc         *render.Document
	warnings    []render.Warning
	company     entity.Company
	invoice     entity.Invoice
	templateRef string // nombre del diseño fijo, ID del guardado o "custom"
}

// RenderPDF genera el PDF de una factura.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrInvalidInput     si la petición no es válida.
//   - domain.ErrNotFound         si template_id no existe.
//   - domain.ErrRenderFailed     si falla la impresión.
func (uc *PDFUseCase) RenderPDF(ctx context.Context, req dto.RenderInvoiceRequest) (pdfBytes []byte, filename string, err error) {
	// ── 1. Componer ───────────────────────────────────────────────────────────
	c, err := uc.compose(ctx, req)
	if err != nil {
		return nil, "", err
	}

	// ── 2. Imprimir ───────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GeneratePDF(ctx, c.doc)
	if err != nil {
		return nil, "", errors.Mark(
			errors.Wrapf(err, "pdf: factura %s", c.invoice.Number), domain.ErrRenderFailed)
	}

	// ── 3. Historial (un fallo aquí no invalida el PDF) ───────────────────────
	uc.record(ctx, c, pdfBytes)

	return pdfBytes, InvoiceFilename(c.invoice.Number), nil
}

// Preview compone el documento sin imprimirlo.
func (uc *PDFUseCase) Preview(ctx context.Context, req dto.RenderInvoiceRequest) (*dto.PreviewResponse, error) {
	c, err := uc.compose(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.PreviewResponse{Document: c.doc, Warnings: c.warnings}, nil
}

// RenderBatch genera varias facturas en paralelo y las devuelve en un ZIP,
// en el orden de la petición. Si una falla, el lote completo falla.
func (uc *PDFUseCase) RenderBatch(ctx context.Context, reqs []dto.RenderInvoiceRequest) ([]byte, error) {
	if len(reqs) == 0 {
		return nil, domain.InvalidInputf("lote vacío")
	}
	if len(reqs) > uc.defaults.BatchMaxInvoices {
		return nil, domain.InvalidInputf("el lote supera %d facturas", uc.defaults.BatchMaxInvoices)
	}

	pdfs := make([][]byte, len(reqs))
	names := make([]string, len(reqs))

	p := pool.New().
		WithMaxGoroutines(uc.defaults.BatchWorkers).
		WithErrors().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
	for i, req := range reqs {
		p.Go(func(ctx context.Context) error {
			data, name, err := uc.RenderPDF(ctx, req)
			if err != nil {
				return errors.Wrapf(err, "factura #%d", i+1)
			}
			pdfs[i], names[i] = data, name
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	entries := make([]ArchiveEntry, 0, len(reqs))
	seen := make(map[string]int, len(reqs))
	for i := range reqs {
		entries = append(entries, ArchiveEntry{Name: uniqueName(names[i], seen), Data: pdfs[i]})
	}
	zipBytes, err := uc.archiver.Archive(entries)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "lote: empaquetar"), domain.ErrRenderFailed)
	}
	uc.log.Info().Int("invoices", len(reqs)).Int("bytes", len(zipBytes)).Msg("lote generado")
	return zipBytes, nil
}

// ListRenders historial de documentos generados.
func (uc *PDFUseCase) ListRenders(ctx context.Context, companyName string, page dto.PageRequest) (*dto.ListRendersResponse, error) {
	page.DefaultPage()
	if err := dto.Validate(page); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "page"), domain.ErrInvalidInput)
	}
	if uc.renders == nil {
		return &dto.ListRendersResponse{Items: []dto.RenderRecordResponse{}, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
	}
	list, err := uc.renders.List(ctx, companyName, page.Limit, page.Offset)
	if err != nil {
		return nil, errors.Wrap(err, "renders: listar")
	}
	items := make([]dto.RenderRecordResponse, 0, len(list))
	for _, d := range list {
		items = append(items, toRenderRecord(d))
	}
	return &dto.ListRendersResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// ── Composición ───────────────────────────────────────────────────────────────

func (uc *PDFUseCase) compose(ctx context.Context, req dto.RenderInvoiceRequest) (*composed, error) {
	if err := dto.Validate(req); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "request"), domain.ErrInvalidInput)
	}
	company, err := toCompany(req.Company)
	if err != nil {
		return nil, err
	}
	invoice, err := toInvoice(req.Invoice)
	if err != nil {
		return nil, err
	}
	if !invoice.TotalsConsistent() {
		uc.log.Warn().
			Str("invoice", invoice.Number).
			Str("total", invoice.Total.String()).
			Str("expected", invoice.ExpectedTotal().String()).
			Msg("el total no coincide con sus componentes; se imprime tal cual")
	}

	showPayment := true
	if req.ShowPaymentInfo != nil {
		showPayment = *req.ShowPaymentInfo
	}
	c := &composed{company: company, invoice: invoice}

	switch {
	case req.TemplateID != "":
		if uc.templates == nil {
			return nil, domain.InvalidInputf("template_id no disponible sin almacén de diseños")
		}
		sd, err := uc.templates.Descriptor(ctx, req.TemplateID)
		if err != nil {
			return nil, err
		}
		accent, _ := lo.Coalesce(req.Accent, sd.Template.Accent, uc.defaults.Accent)
		rc := render.NewRenderContext(company, invoice, accent, showPayment)
		c.doc = uc.composer.ComposeCustom(sd.Descriptor, rc)
		c.warnings = sd.Warnings
		c.templateRef = sd.Template.ID

	case req.HasInlineSections():
		desc, warnings, err := render.ParseDescriptor(req.Sections)
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "sections"), domain.ErrInvalidInput)
		}
		for _, w := range warnings {
			uc.log.Warn().Str("invoice", invoice.Number).Msg(w.String())
		}
		accent, _ := lo.Coalesce(req.Accent, uc.defaults.Accent)
		rc := render.NewRenderContext(company, invoice, accent, showPayment)
		c.doc = uc.composer.ComposeCustom(desc, rc)
		c.warnings = warnings
		c.templateRef = entity.RenderModeCustom

	default:
		name, _ := lo.Coalesce(req.Template, uc.defaults.Template, render.DefaultTemplate)
		accent, _ := lo.Coalesce(req.Accent, uc.defaults.Accent)
		rc := render.NewRenderContext(company, invoice, accent, showPayment)
		c.doc = uc.composer.ComposeFixed(name, rc)
		c.templateRef = c.doc.Template
	}
	return c, nil
}

func (uc *PDFUseCase) record(ctx context.Context, c *composed, pdfBytes []byte) {
	if uc.renders == nil {
		return
	}
	sum := sha256.Sum256(pdfBytes)
	rec := &entity.RenderedDocument{
		CompanyName:   c.company.Name,
		InvoiceNumber: c.invoice.Number,
		Mode:          c.doc.Mode,
		Template:      c.templateRef,
		Pages:         c.doc.PageCount(),
		Currency:      lo.Ternary(c.invoice.Currency == "", render.DefaultCurrency, c.invoice.Currency),
		Total:         c.invoice.Total,
		Checksum:      hex.EncodeToString(sum[:]),
		SizeBytes:     len(pdfBytes),
	}
	if err := uc.renders.Create(ctx, rec); err != nil {
		uc.log.Error().Err(err).Str("invoice", c.invoice.Number).Msg("no se pudo registrar el documento generado")
		return
	}
	uc.log.Info().
		Str("render_id", rec.ID).
		Str("invoice", rec.InvoiceNumber).
		Str("mode", rec.Mode).
		Int("pages", rec.Pages).
		Msg("pdf generado")
}

// ── helpers ───────────────────────────────────────────────────────────────────

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// InvoiceFilename nombre de descarga: invoice_<número>.pdf.
func InvoiceFilename(number string) string {
	safe := unsafeFilename.ReplaceAllString(number, "_")
	if safe == "" {
		safe = "document"
	}
	return "invoice_" + safe + ".pdf"
}

// uniqueName agrega un sufijo si el nombre ya se usó dentro del ZIP. Los
// candidatos generados también se registran, así "A", "A", "A_2" no chocan.
func uniqueName(name string, seen map[string]int) string {
	n := seen[name]
	seen[name]++
	if n == 0 {
		return name
	}
	base := strings.TrimSuffix(name, ".pdf")
	for {
		n++
		candidate := fmt.Sprintf("%s_%d.pdf", base, n)
		if seen[candidate] == 0 {
			seen[candidate]++
			return candidate
		}
	}
}
