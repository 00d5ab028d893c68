package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/firmaflow/ledger/internal/domain/entity"
)

const (
	dateLayout   = "02 Jan 2006"
	notAvailable = "N/A"
	neutralGray  = "#6B7280"
	softGray     = "#E5E7EB"
)

// renderSection despacha según el tipo de sección. La tabla de ítems recibe
// todas las líneas de la factura (modo personalizado, sin paginar).
// Devuelve false si la sección no es de un tipo conocido.
func renderSection(s Section, rc *RenderContext) (Block, bool) {
	switch s := s.(type) {
	case HeaderSection:
		return renderHeader(s, rc), true
	case CompanyInfoSection:
		return renderCompanyInfo(s, rc), true
	case CustomerInfoSection:
		return renderCustomerInfo(s, rc), true
	case InvoiceDetailsSection:
		return renderInvoiceDetails(s, rc), true
	case ItemsTableSection:
		return renderItemsTable(s, rc, rc.Invoice().Items, 0), true
	case TotalsSection:
		return renderTotals(s, rc), true
	case PaymentInfoSection:
		return renderPaymentInfo(s, rc), true
	case CustomTextSection:
		return renderCustomText(s), true
	case DividerSection:
		return renderDivider(s), true
	default:
		return Block{}, false
	}
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// renderHeader: logo opcional, título y número de factura.
func renderHeader(s HeaderSection, rc *RenderContext) Block {
	st := ResolveStyle(s.Props)
	b := Block{Name: string(KindHeader), Style: st}

	company := rc.Company()
	if s.ShowLogo.Or(true) && company.HasLogo() {
		b.Nodes = append(b.Nodes, Node{
			Kind:  NodeImage,
			Align: st.TextAlign,
			Image: &Image{Data: company.Logo, Format: company.LogoFormat, Height: 40},
		})
	}

	title := string(s.Title)
	if title == "" {
		title = "INVOICE"
	}
	b.Nodes = append(b.Nodes, textNode(title, Font{
		Size: st.FontSize * 2, Bold: true, Color: headingColor(st, rc),
	}, st.TextAlign))

	if number := rc.Invoice().Number; number != "" {
		b.Nodes = append(b.Nodes, textNode("Invoice #"+number, Font{
			Size: st.FontSize, Bold: st.Bold, Color: st.Color,
		}, st.TextAlign))
	}
	return b
}

// renderCompanyInfo: nombre, dirección y contacto del emisor. Los campos
// vacíos se omiten.
func renderCompanyInfo(s CompanyInfoSection, rc *RenderContext) Block {
	st := ResolveStyle(s.Props)
	c := rc.Company()
	b := Block{Name: string(KindCompanyInfo), Style: st}

	if title := string(s.Title); title != "" {
		b.Nodes = append(b.Nodes, headingNode(title, st, rc))
	}
	if c.Name != "" {
		b.Nodes = append(b.Nodes, textNode(c.Name, Font{Size: st.FontSize + 2, Bold: true, Color: st.Color}, st.TextAlign))
	}
	lines := lo.Compact([]string{
		strings.TrimSpace(c.Address),
		joinNonBlank(", ", c.City, c.State),
		strings.TrimSpace(c.Phone),
		strings.TrimSpace(c.Email),
	})
	for _, l := range lines {
		b.Nodes = append(b.Nodes, textNode(l, Font{Size: st.FontSize, Bold: st.Bold, Color: st.Color}, st.TextAlign))
	}
	return b
}

// renderCustomerInfo: bloque "Bill To" con la misma regla de omisión.
func renderCustomerInfo(s CustomerInfoSection, rc *RenderContext) Block {
	st := ResolveStyle(s.Props)
	cu := rc.Invoice().Customer
	b := Block{Name: string(KindCustomerInfo), Style: st}

	title := string(s.Title)
	if title == "" {
		title = "Bill To"
	}
	b.Nodes = append(b.Nodes, headingNode(title, st, rc))
	if name := strings.TrimSpace(cu.Name); name != "" {
		b.Nodes = append(b.Nodes, textNode(name, Font{Size: st.FontSize + 1, Bold: true, Color: st.Color}, st.TextAlign))
	}
	lines := lo.Compact([]string{
		strings.TrimSpace(cu.Address),
		strings.TrimSpace(cu.City),
		strings.TrimSpace(cu.Phone),
		strings.TrimSpace(cu.Email),
	})
	for _, l := range lines {
		b.Nodes = append(b.Nodes, textNode(l, Font{Size: st.FontSize, Bold: st.Bold, Color: st.Color}, st.TextAlign))
	}
	return b
}

// renderInvoiceDetails: filas clave/valor justificadas según la alineación.
func renderInvoiceDetails(s InvoiceDetailsSection, rc *RenderContext) Block {
	st := ResolveStyle(s.Props)
	inv := rc.Invoice()
	b := Block{Name: string(KindInvoiceDetails), Style: st}

	font := Font{Size: st.FontSize, Bold: st.Bold, Color: st.Color}
	if inv.Number != "" {
		b.Nodes = append(b.Nodes, fieldNode("Invoice #", inv.Number, font, st.TextAlign))
	}
	if d := formatDate(inv.IssueDate); d != "" {
		b.Nodes = append(b.Nodes, fieldNode("Date", d, font, st.TextAlign))
	}
	if d := formatDate(inv.DueDate); d != "" {
		b.Nodes = append(b.Nodes, fieldNode("Due Date", d, font, st.TextAlign))
	}
	return b
}

// renderItemsTable: tabla de líneas. offset numera las filas cuando la tabla
// es un tramo de una factura paginada.
func renderItemsTable(s ItemsTableSection, rc *RenderContext, items []entity.LineItem, offset int) Block {
	st := ResolveStyle(s.Props)
	b := Block{Name: string(KindItemsTable), Style: st}

	t := &Table{
		Columns: []Column{
			{Header: "#", Span: 1, Align: AlignCenter},
			{Header: "Description", Span: 5, Align: AlignLeft},
			{Header: "Qty", Span: 2, Align: AlignCenter},
			{Header: "Rate", Span: 2, Align: AlignRight},
			{Header: "Amount", Span: 2, Align: AlignRight},
		},
		HeaderColor: sanitizeColor(string(s.HeaderColor), rc.Accent()),
		Striped:     s.Striped.Or(false),
	}
	if len(items) == 0 {
		t.Rows = [][]string{{"", "No items", "", "", ""}}
	}
	for i, it := range items {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", offset+i+1),
			it.Description,
			it.Quantity.String(),
			rc.Money(it.Rate),
			rc.Money(it.Amount),
		})
	}
	b.Nodes = append(b.Nodes, Node{
		Kind:  NodeTable,
		Font:  Font{Size: st.FontSize, Color: st.Color},
		Table: t,
	})
	return b
}

// renderTotals: descuento, impuesto y envío solo si son > 0; el total siempre.
// Lee los importes de la factura, no de la tabla renderizada.
func renderTotals(s TotalsSection, rc *RenderContext) Block {
	st := ResolveStyle(s.Props)
	inv := rc.Invoice()
	b := Block{Name: string(KindTotals), Style: st}

	font := Font{Size: st.FontSize, Bold: st.Bold, Color: st.Color}
	b.Nodes = append(b.Nodes, fieldNode("Subtotal", rc.Money(inv.Subtotal), font, st.TextAlign))
	if inv.Discount.IsPositive() {
		b.Nodes = append(b.Nodes, fieldNode("Discount", "-"+rc.Money(inv.Discount), font, st.TextAlign))
	}
	if inv.Tax.IsPositive() {
		b.Nodes = append(b.Nodes, fieldNode("Tax", rc.Money(inv.Tax), font, st.TextAlign))
	}
	if inv.Shipping.IsPositive() {
		b.Nodes = append(b.Nodes, fieldNode("Shipping", rc.Money(inv.Shipping), font, st.TextAlign))
	}
	b.Nodes = append(b.Nodes, fieldNode("Total", rc.Money(inv.Total), Font{
		Size: st.FontSize + 2, Bold: true, Color: rc.Accent(),
	}, st.TextAlign))
	return b
}

// renderPaymentInfo: datos bancarios; los faltantes se muestran como "N/A".
func renderPaymentInfo(s PaymentInfoSection, rc *RenderContext) Block {
	st := ResolveStyle(s.Props)
	b := Block{Name: string(KindPaymentInfo), Style: st}

	title := string(s.Title)
	if title == "" {
		title = "Payment Information"
	}
	b.Nodes = append(b.Nodes, headingNode(title, st, rc))

	var bank entity.BankDetails
	if rc.Company().Bank != nil {
		bank = *rc.Company().Bank
	}
	font := Font{Size: st.FontSize, Bold: st.Bold, Color: st.Color}
	b.Nodes = append(b.Nodes,
		fieldNode("Bank Name", orNA(bank.BankName), font, st.TextAlign),
		fieldNode("Account Name", orNA(bank.AccountName), font, st.TextAlign),
		fieldNode("Account Number", orNA(bank.AccountNumber), font, st.TextAlign),
	)
	return b
}

// renderCustomText: texto libre con negrita, cursiva y subrayado.
func renderCustomText(s CustomTextSection) Block {
	st := ResolveStyle(s.Props)
	return Block{
		Name:  string(KindCustomText),
		Style: st,
		Nodes: []Node{textNode(s.Text, Font{
			Size:      st.FontSize,
			Bold:      st.Bold,
			Italic:    s.Italic.Or(false),
			Underline: s.Underline.Or(false),
			Color:     st.Color,
		}, st.TextAlign)},
	}
}

// renderDivider: línea horizontal sin contenido.
func renderDivider(s DividerSection) Block {
	st := ResolveStyle(s.Props)
	if !s.Padding.Set {
		st.Padding = 0
	}
	return Block{
		Name:  string(KindDivider),
		Style: st,
		Nodes: []Node{{
			Kind: NodeRule,
			Rule: &Rule{
				Thickness: s.Thickness.Or(1),
				Color:     sanitizeColor(string(s.Color), softGray),
				Margin:    s.Margin.Or(8),
				Style:     resolveBorderStyle(s.Border.Style),
			},
		}},
	}
}

// ── Bloques estructurales ─────────────────────────────────────────────────────

// renderContinued marca las páginas posteriores a la primera.
func renderContinued(rc *RenderContext) Block {
	st := ResolveStyle(Props{Padding: L(2), FontSize: "sm"})
	return Block{
		Name:  BlockContinued,
		Style: st,
		Nodes: []Node{textNode(fmt.Sprintf("Invoice #%s (Continued)", rc.Invoice().Number), Font{
			Size: st.FontSize, Bold: true, Color: neutralGray,
		}, AlignLeft)},
	}
}

// renderNotes: notas libres de la factura; false si no hay notas.
func renderNotes(rc *RenderContext, italic bool) (Block, bool) {
	notes := strings.TrimSpace(rc.Invoice().Notes)
	if notes == "" {
		return Block{}, false
	}
	st := ResolveStyle(Props{Padding: L(2), FontSize: "sm"})
	return Block{
		Name:  BlockNotes,
		Style: st,
		Nodes: []Node{
			headingNode("Notes", st, rc),
			textNode(notes, Font{Size: st.FontSize, Italic: italic, Color: neutralGray}, AlignLeft),
		},
	}, true
}

// renderPlaceholder bloque explicativo para diseños sin secciones.
func renderPlaceholder() Block {
	st := ResolveStyle(Props{Padding: L(8), Alignment: "center"})
	return Block{
		Name:  BlockPlaceholder,
		Style: st,
		Nodes: []Node{textNode(
			"This template has no sections yet. Add sections to design your invoice.",
			Font{Size: st.FontSize, Italic: true, Color: neutralGray}, AlignCenter,
		)},
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func textNode(text string, f Font, a Align) Node {
	return Node{Kind: NodeText, Text: text, Font: f, Align: a}
}

func fieldNode(label, value string, f Font, a Align) Node {
	return Node{Kind: NodeField, Label: label, Value: value, Font: f, Align: a}
}

func headingNode(title string, st Style, rc *RenderContext) Node {
	return textNode(title, Font{Size: st.FontSize + 1, Bold: true, Color: headingColor(st, rc)}, st.TextAlign)
}

// headingColor: el color explícito de la sección o el acento.
func headingColor(st Style, rc *RenderContext) string {
	if st.Color != "" {
		return st.Color
	}
	return rc.Accent()
}

func joinNonBlank(sep string, parts ...string) string {
	trimmed := lo.Map(parts, func(p string, _ int) string { return strings.TrimSpace(p) })
	return strings.Join(lo.Compact(trimmed), sep)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}
