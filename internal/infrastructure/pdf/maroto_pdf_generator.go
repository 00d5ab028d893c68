// Package pdf imprime un render.Document con Maroto v2.
//
// Cada render.Page se convierte en una página de Maroto. Los bloques se
// traducen a filas sobre la grilla de 12 columnas:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  padding superior (fila vacía con el fondo del bloque)       │
//	│  una fila por nodo: texto, campo, tabla, línea o logo        │
//	│  padding inferior                                            │
//	│  ...                                                          │
//	│  pie "Page i of N"                                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/linestyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/rs/zerolog"

	"github.com/firmaflow/ledger/internal/render"
)

// ptToMM convierte puntos tipográficos a milímetros (unidad de Maroto).
const ptToMM = 0.3528

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorGray   = &props.Color{Red: 107, Green: 114, Blue: 128}
	colorWhite  = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe = &props.Color{Red: 243, Green: 244, Blue: 246}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	log zerolog.Logger
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(log zerolog.Logger) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{log: log.With().Str("component", "pdf").Logger()}
}

// GeneratePDF imprime el documento y devuelve los bytes del PDF.
func (g *MarotoPDFGenerator) GeneratePDF(ctx context.Context, doc *render.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("pdf: documento nulo")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "pdf: generación cancelada")
	}

	margin := doc.Setup.MarginPt * ptToMM
	family := doc.Font
	if family == "" {
		family = "helvetica"
	}
	cfg := config.NewBuilder().
		WithPageSize(pageSize(doc.Setup.Size)).
		WithLeftMargin(margin).WithRightMargin(margin).
		WithTopMargin(margin).WithBottomMargin(margin).
		WithDefaultFont(&props.Font{Family: family, Size: doc.Setup.BaseFontSize}).
		WithTitle(pdfText(doc.Title), true).
		WithAuthor(pdfText(nonEmpty(doc.Author, "FirmaFlow Ledger")), true).
		Build()

	m := maroto.New(cfg)

	pages := make([]core.Page, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		var rows []core.Row
		for _, b := range p.Blocks {
			rows = append(rows, blockRows(b, doc.Accent)...)
		}
		rows = append(rows, footerRow(p.Footer))
		pages = append(pages, page.New().Add(rows...))
	}
	m.AddPages(pages...)

	out, err := m.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "pdf: generar documento")
	}
	g.log.Debug().
		Str("title", doc.Title).
		Int("pages", doc.PageCount()).
		Msg("pdf generado")
	return out.GetBytes(), nil
}

// ── Bloques ───────────────────────────────────────────────────────────────────

// blockRows traduce un bloque a filas; el fondo y el borde del bloque se
// aplican a cada fila.
func blockRows(b render.Block, accent string) []core.Row {
	cell := blockCell(b.Style)
	pad := b.Style.Padding * ptToMM

	var rows []core.Row
	if pad > 0 {
		rows = append(rows, styled(row.New(pad/2), cell))
	}
	for _, n := range b.Nodes {
		switch n.Kind {
		case render.NodeText:
			rows = append(rows, styled(textRow(n, pad), cell))
		case render.NodeField:
			rows = append(rows, styled(fieldRow(n, pad), cell))
		case render.NodeTable:
			rows = append(rows, tableRows(n, accent, pad)...)
		case render.NodeRule:
			rows = append(rows, ruleRow(n.Rule))
		case render.NodeImage:
			if r, ok := imageRow(n); ok {
				rows = append(rows, styled(r, cell))
			}
		}
	}
	if pad > 0 {
		rows = append(rows, styled(row.New(pad/2), cell))
	}
	return rows
}

// textRow: una línea de texto a lo ancho de la grilla.
func textRow(n render.Node, pad float64) core.Row {
	return row.New(lineHeight(n.Font.Size)).Add(
		col.New(12).Add(text.New(pdfText(n.Text), textProps(n.Font, n.Align, pad))),
	)
}

// fieldRow: etiqueta y valor en columnas contiguas, ubicadas según la alineación.
func fieldRow(n render.Node, pad float64) core.Row {
	labelFont := n.Font
	labelFont.Bold = true
	label := text.New(pdfText(n.Label+":"), textProps(labelFont, render.AlignLeft, pad))
	value := text.New(pdfText(n.Value), textProps(n.Font, render.AlignRight, pad))

	h := lineHeight(n.Font.Size)
	switch n.Align {
	case render.AlignRight:
		return row.New(h).Add(col.New(6), col.New(3).Add(label), col.New(3).Add(value))
	case render.AlignCenter:
		return row.New(h).Add(col.New(3), col.New(3).Add(label), col.New(3).Add(value), col.New(3))
	default:
		return row.New(h).Add(col.New(4).Add(label), col.New(4).Add(value), col.New(4))
	}
}

// tableRows: cabecera con el color de acento y una fila por línea.
func tableRows(n render.Node, accent string, pad float64) []core.Row {
	t := n.Table
	if t == nil {
		return nil
	}
	headerBg := hexColor(t.HeaderColor, hexColor(accent, colorGray))
	size := n.Font.Size
	if size <= 0 {
		size = 9
	}
	h := lineHeight(size)

	header := make([]core.Col, 0, len(t.Columns))
	for _, c := range t.Columns {
		header = append(header, col.New(c.Span).Add(text.New(pdfText(c.Header), props.Text{
			Style: fontstyle.Bold, Size: size, Align: alignOf(c.Align),
			Color: colorWhite, Top: 1, Left: 1, Right: 1,
		})))
	}
	rows := []core.Row{
		row.New(h + 1).Add(header...).WithStyle(&props.Cell{BackgroundColor: headerBg}),
	}

	color := hexColor(n.Font.Color, nil)
	for i, r := range t.Rows {
		cols := make([]core.Col, 0, len(t.Columns))
		for j, c := range t.Columns {
			cell := ""
			if j < len(r) {
				cell = r[j]
			}
			cols = append(cols, col.New(c.Span).Add(text.New(pdfText(cell), props.Text{
				Size: size, Align: alignOf(c.Align), Color: color, Top: 1, Left: 1, Right: 1,
			})))
		}
		tr := row.New(h + 1).Add(cols...)
		if t.Striped && i%2 == 1 {
			tr = tr.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, tr)
	}
	return rows
}

// ruleRow: línea horizontal con margen vertical.
func ruleRow(r *render.Rule) core.Row {
	if r == nil {
		return row.New(1)
	}
	return line.NewRow(r.Margin*2*ptToMM+r.Thickness*ptToMM, props.Line{
		Color:     hexColor(r.Color, colorGray),
		Thickness: r.Thickness * ptToMM,
		Style:     lineStyle(r.Style),
	})
}

// imageRow: logo en un tercio del ancho, ubicado según la alineación.
func imageRow(n render.Node) (core.Row, bool) {
	img := n.Image
	if img == nil || len(img.Data) == 0 {
		return nil, false
	}
	ext, ok := imageExtension(img.Format)
	if !ok {
		return nil, false
	}
	logo := col.New(4).Add(image.NewFromBytes(img.Data, ext, props.Rect{Center: true, Percent: 100}))
	h := img.Height * ptToMM

	switch n.Align {
	case render.AlignCenter:
		return row.New(h).Add(col.New(4), logo, col.New(4)), true
	case render.AlignRight:
		return row.New(h).Add(col.New(8), logo), true
	default:
		return row.New(h).Add(logo, col.New(8)), true
	}
}

// footerRow: pie de página centrado.
func footerRow(footer string) core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(pdfText(footer), props.Text{
		Size: 8, Align: align.Center, Color: colorGray, Top: 3,
	})))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func styled(r core.Row, cell *props.Cell) core.Row {
	if cell == nil {
		return r
	}
	return r.WithStyle(cell)
}

func blockCell(s render.Style) *props.Cell {
	bg := hexColor(s.Background, nil)
	if bg == nil && s.Border == nil {
		return nil
	}
	cell := &props.Cell{BackgroundColor: bg}
	if s.Border != nil {
		cell.BorderType = border.Full
		cell.BorderColor = hexColor(s.Border.Color, colorGray)
		cell.BorderThickness = s.Border.Width * ptToMM
		cell.LineStyle = lineStyle(s.Border.Style)
	}
	return cell
}

func textProps(f render.Font, a render.Align, pad float64) props.Text {
	return props.Text{
		Size:  f.Size,
		Style: fontStyle(f),
		Align: alignOf(a),
		Color: hexColor(f.Color, nil),
		Top:   0.5,
		Left:  pad,
		Right: pad,
	}
}

// lineHeight alto de fila para un tamaño de fuente en puntos.
func lineHeight(size float64) float64 {
	if size <= 0 {
		size = 10
	}
	return size * ptToMM * 1.6
}

// fontStyle: Maroto no tiene subrayado; se imprime con el resto del estilo.
func fontStyle(f render.Font) fontstyle.Type {
	switch {
	case f.Bold && f.Italic:
		return fontstyle.BoldItalic
	case f.Bold:
		return fontstyle.Bold
	case f.Italic:
		return fontstyle.Italic
	default:
		return fontstyle.Normal
	}
}

func alignOf(a render.Align) align.Type {
	switch a {
	case render.AlignCenter:
		return align.Center
	case render.AlignRight:
		return align.Right
	default:
		return align.Left
	}
}

func lineStyle(s render.BorderStyle) linestyle.Type {
	if s == render.BorderDashed || s == render.BorderDotted {
		return linestyle.Dashed
	}
	return linestyle.Solid
}

func hexColor(hex string, fallback *props.Color) *props.Color {
	r, g, b, ok := render.ParseHexColor(hex)
	if !ok {
		return fallback
	}
	return &props.Color{Red: r, Green: g, Blue: b}
}

func pageSize(name string) pagesize.Type {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "LETTER":
		return pagesize.Letter
	case "LEGAL":
		return pagesize.Legal
	case "A3":
		return pagesize.A3
	case "A5":
		return pagesize.A5
	default:
		return pagesize.A4
	}
}

func imageExtension(format string) (extension.Type, bool) {
	switch strings.ToLower(format) {
	case "png":
		return extension.Png, true
	case "jpg", "jpeg":
		return extension.Jpg, true
	default:
		return "", false
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
