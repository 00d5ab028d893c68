package render

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/firmaflow/ledger/internal/domain/entity"
)

// Composer arma documentos paginados a partir de una factura. No guarda
// estado entre llamadas; puede usarse desde varias goroutines.
type Composer struct {
	log          zerolog.Logger
	itemsPerPage int
	setup        PageSetup
}

// Option configura un Composer.
type Option func(*Composer)

// WithItemsPerPage fija la capacidad de líneas por página de los diseños fijos.
func WithItemsPerPage(n int) Option {
	return func(c *Composer) {
		if n > 0 {
			c.itemsPerPage = n
		}
	}
}

// WithPageSetup fija tamaño de página, márgenes y fuente base.
func WithPageSetup(s PageSetup) Option {
	return func(c *Composer) {
		def := DefaultPageSetup()
		if s.Size == "" {
			s.Size = def.Size
		}
		if s.MarginPt <= 0 {
			s.MarginPt = def.MarginPt
		}
		if s.BaseFontSize <= 0 {
			s.BaseFontSize = def.BaseFontSize
		}
		c.setup = s
	}
}

// NewComposer crea un compositor con capacidad de 15 líneas por página y
// formato A4 salvo que las opciones digan otra cosa.
func NewComposer(log zerolog.Logger, opts ...Option) *Composer {
	c := &Composer{
		log:          log.With().Str("component", "render").Logger(),
		itemsPerPage: DefaultItemsPerPage,
		setup:        DefaultPageSetup(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ItemsPerPage capacidad efectiva de líneas por página.
func (c *Composer) ItemsPerPage() int { return c.itemsPerPage }

// ── Diseños fijos ─────────────────────────────────────────────────────────────

// ComposeFixed arma un diseño fijo paginado. Un nombre desconocido usa el
// diseño por defecto. Sin acento explícito se usa el del diseño.
func (c *Composer) ComposeFixed(name string, rc *RenderContext) *Document {
	theme, ok := LookupTheme(name)
	if !ok {
		c.log.Warn().Str("template", name).Str("fallback", DefaultTemplate).
			Msg("diseño fijo desconocido, se usa el diseño por defecto")
		theme, _ = LookupTheme(DefaultTemplate)
	}
	rc = rc.withDefaultAccent(theme.Accent)
	layout := theme.layout(rc.Accent())
	inv := rc.Invoice()

	slices := Paginate(inv.Items, c.itemsPerPage)
	pages := make([]Page, 0, len(slices))
	for _, sl := range slices {
		var blocks []Block
		if sl.First() {
			blocks = append(blocks,
				renderHeader(layout.header, rc),
				renderDivider(layout.divider),
				renderCompanyInfo(layout.company, rc),
				renderCustomerInfo(layout.customer, rc),
				renderInvoiceDetails(layout.details, rc),
			)
		} else {
			blocks = append(blocks, renderContinued(rc))
		}

		blocks = append(blocks, renderItemsTable(layout.items, rc, sl.Items, sl.Offset))

		if sl.Last() {
			blocks = append(blocks, renderTotals(layout.totals, rc))
			if notes, ok := renderNotes(rc, theme.ItalicNotes); ok {
				blocks = append(blocks, notes)
			}
			if rc.ShowPaymentInfo() {
				blocks = append(blocks, renderPaymentInfo(layout.payment, rc))
			}
		}
		pages = append(pages, Page{Number: sl.Number, Blocks: blocks})
	}

	doc := &Document{
		Mode:     entity.RenderModeFixed,
		Template: theme.Name,
		Title:    documentTitle(inv),
		Author:   rc.Company().Name,
		Accent:   rc.Accent(),
		Font:     theme.FontFamily,
		Setup:    c.setup,
		Pages:    pages,
	}
	return c.finish(doc)
}

// ── Diseños personalizados ────────────────────────────────────────────────────

// ComposeCustom renderiza las secciones en orden sobre una sola página, sin
// paginar. Un descriptor vacío produce una página con un aviso.
func (c *Composer) ComposeCustom(desc TemplateDescriptor, rc *RenderContext) *Document {
	doc := &Document{
		Mode:     entity.RenderModeCustom,
		Template: entity.RenderModeCustom,
		Title:    documentTitle(rc.Invoice()),
		Author:   rc.Company().Name,
		Accent:   rc.Accent(),
		Font:     "helvetica",
		Setup:    c.setup,
	}

	var blocks []Block
	for i, s := range desc.Sections {
		if s == nil {
			c.log.Warn().Int("index", i).Msg("sección nula omitida")
			continue
		}
		if _, isPayment := s.(PaymentInfoSection); isPayment && !rc.ShowPaymentInfo() {
			c.log.Debug().Int("index", i).Msg("información de pago deshabilitada")
			continue
		}
		b, ok := renderSection(s, rc)
		if !ok {
			c.log.Warn().Int("index", i).Str("kind", string(s.Kind())).Msg("sección desconocida omitida")
			continue
		}
		blocks = append(blocks, b)
	}

	if len(blocks) == 0 {
		if desc.Len() > 0 {
			c.log.Warn().Int("sections", desc.Len()).Msg("ninguna sección renderizable, se muestra el aviso")
		}
		blocks = []Block{renderPlaceholder()}
	}

	doc.Pages = []Page{{Number: 1, Blocks: blocks}}
	return c.finish(doc)
}

// ComposeCustomJSON parsea el descriptor y lo compone. Las advertencias del
// parseo se registran; un descriptor ilegible se trata como vacío.
func (c *Composer) ComposeCustomJSON(raw []byte, rc *RenderContext) *Document {
	desc, warnings, err := ParseDescriptor(raw)
	if err != nil {
		c.log.Warn().Err(err).Msg("descriptor ilegible, se trata como vacío")
	}
	for _, w := range warnings {
		c.log.Warn().Int("index", w.Index).Str("kind", w.Kind).Msg(w.Reason)
	}
	return c.ComposeCustom(desc, rc)
}

// finish segunda pasada: el pie "Page i of N" solo se conoce con el total.
func (c *Composer) finish(doc *Document) *Document {
	total := len(doc.Pages)
	for i := range doc.Pages {
		doc.Pages[i].Number = i + 1
		doc.Pages[i].Footer = fmt.Sprintf("Page %d of %d", i+1, total)
	}
	c.log.Debug().
		Str("mode", doc.Mode).
		Str("template", doc.Template).
		Int("pages", total).
		Msg("documento compuesto")
	return doc
}

func documentTitle(inv entity.Invoice) string {
	if inv.Number == "" {
		return "Invoice"
	}
	return "Invoice " + inv.Number
}
