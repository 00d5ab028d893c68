package render_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firmaflow/ledger/internal/domain/entity"
	"github.com/firmaflow/ledger/internal/render"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func testCompany() entity.Company {
	return entity.Company{
		Name:    "Acme Ltd",
		Address: "12 Marina Rd",
		City:    "Lagos",
		Phone:   "+234 800 000 0000",
		Email:   "billing@acme.test",
		Bank: &entity.BankDetails{
			BankName:    "First Bank",
			AccountName: "Acme Ltd",
		},
	}
}

func testInvoice(n int) entity.Invoice {
	items := make([]entity.LineItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, entity.LineItem{
			Description: fmt.Sprintf("Item %d", i+1),
			Quantity:    decimal.NewFromInt(1),
			Rate:        decimal.NewFromInt(10),
			Amount:      decimal.NewFromInt(10),
		})
	}
	return entity.Invoice{
		Number:    "INV-001",
		IssueDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Currency:  "NGN",
		Customer:  entity.InvoiceCustomer{Name: "Jane Doe", City: "Abuja"},
		Items:     items,
		Subtotal:  decimal.NewFromInt(1000),
		Tax:       decimal.NewFromInt(75),
		Total:     decimal.NewFromInt(1075),
	}
}

func newComposer() *render.Composer {
	return render.NewComposer(zerolog.Nop())
}

func blockNames(p render.Page) []string {
	out := make([]string, 0, len(p.Blocks))
	for _, b := range p.Blocks {
		out = append(out, b.Name)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestPaginate(t *testing.T) {
	assert.Equal(t, 1, render.PageCount(0, 15))
	assert.Equal(t, 1, render.PageCount(15, 15))
	assert.Equal(t, 2, render.PageCount(16, 15))
	assert.Equal(t, 3, render.PageCount(32, 15))

	slices := render.Paginate(testInvoice(32).Items, 15)
	require.Len(t, slices, 3)
	assert.Len(t, slices[0].Items, 15)
	assert.Len(t, slices[1].Items, 15)
	assert.Len(t, slices[2].Items, 2)
	assert.Equal(t, 30, slices[2].Offset)
	assert.True(t, slices[0].First())
	assert.True(t, slices[2].Last())

	empty := render.Paginate(nil, 15)
	require.Len(t, empty, 1)
	assert.True(t, empty[0].First())
	assert.True(t, empty[0].Last())
}

// ──────────────────────────────────────────────────────────────────────────────
// Diseños fijos
// ──────────────────────────────────────────────────────────────────────────────

func TestComposeFixed_TresPaginas(t *testing.T) {
	rc := render.NewRenderContext(testCompany(), testInvoice(32), "", true)
	doc := newComposer().ComposeFixed("modern", rc)

	require.Equal(t, 3, doc.PageCount())
	assert.Equal(t, entity.RenderModeFixed, doc.Mode)
	assert.Equal(t, render.BrandColor, doc.Accent)

	for i, p := range doc.Pages {
		assert.Equal(t, fmt.Sprintf("Page %d of 3", i+1), p.Footer)
		assert.True(t, p.Has(string(render.KindItemsTable)), "página %d sin tabla", i+1)
	}

	first := doc.Pages[0]
	assert.Equal(t, []string{"header", "divider", "companyInfo", "customerInfo", "invoiceDetails", "itemsTable"}, blockNames(first))

	second := doc.Pages[1]
	assert.Equal(t, []string{render.BlockContinued, "itemsTable"}, blockNames(second))
	cont, _ := second.Block(render.BlockContinued)
	assert.Equal(t, []string{"Invoice #INV-001 (Continued)"}, cont.Lines())

	last := doc.Pages[2]
	assert.True(t, last.Has(string(render.KindTotals)))
	assert.True(t, last.Has(string(render.KindPaymentInfo)))
	assert.False(t, first.Has(string(render.KindTotals)))
	assert.False(t, second.Has(string(render.KindTotals)))

	table, _ := last.Block(string(render.KindItemsTable))
	rows := table.Nodes[0].Table.Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "31", rows[0][0], "la numeración continúa entre páginas")
	assert.Equal(t, "₦10.00", rows[0][3])
}

func TestComposeFixed_Totales(t *testing.T) {
	rc := render.NewRenderContext(testCompany(), testInvoice(2), "", false)
	doc := newComposer().ComposeFixed("classic", rc)
	require.Equal(t, 1, doc.PageCount())

	totals, ok := doc.Pages[0].Block(string(render.KindTotals))
	require.True(t, ok)
	assert.Equal(t, []string{"Subtotal: ₦1,000.00", "Tax: ₦75.00", "Total: ₦1,075.00"}, totals.Lines())
	assert.False(t, doc.Pages[0].Has(string(render.KindPaymentInfo)), "pago deshabilitado")
	assert.Equal(t, "Page 1 of 1", doc.Pages[0].Footer)
}

func TestComposeFixed_SinLineas(t *testing.T) {
	rc := render.NewRenderContext(testCompany(), testInvoice(0), "#10B981", true)
	doc := newComposer().ComposeFixed("minimal", rc)
	require.Equal(t, 1, doc.PageCount())

	table, ok := doc.Pages[0].Block(string(render.KindItemsTable))
	require.True(t, ok)
	require.Len(t, table.Nodes[0].Table.Rows, 1)
	assert.Contains(t, table.Lines()[0], "No items")
	assert.Equal(t, "#10B981", table.Nodes[0].Table.HeaderColor)
	assert.True(t, doc.Pages[0].Has(string(render.KindTotals)))
}

func TestComposeFixed_DisenoDesconocido(t *testing.T) {
	rc := render.NewRenderContext(testCompany(), testInvoice(1), "", false)
	doc := newComposer().ComposeFixed("baroque", rc)
	assert.Equal(t, render.DefaultTemplate, doc.Template)
}

func TestComposeFixed_CapacidadConfigurable(t *testing.T) {
	rc := render.NewRenderContext(testCompany(), testInvoice(10), "", false)
	c := render.NewComposer(zerolog.Nop(), render.WithItemsPerPage(4))
	assert.Equal(t, 3, c.ComposeFixed("elegant", rc).PageCount())
}

func TestComposeFixed_NotasYFechas(t *testing.T) {
	inv := testInvoice(1)
	inv.Notes = "Pagar en 30 días"
	inv.DueDate = time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC)
	rc := render.NewRenderContext(testCompany(), inv, "", false)
	doc := newComposer().ComposeFixed("modern", rc)

	notes, ok := doc.Pages[0].Block(render.BlockNotes)
	require.True(t, ok)
	assert.Contains(t, notes.Lines(), "Pagar en 30 días")

	details, _ := doc.Pages[0].Block(string(render.KindInvoiceDetails))
	assert.Equal(t, []string{"Invoice #: INV-001", "Date: 05 Mar 2024", "Due Date: 04 Apr 2024"}, details.Lines())
}

func TestThemes(t *testing.T) {
	assert.Equal(t, []string{"modern", "classic", "minimal", "professional", "elegant"}, render.ThemeNames())
	_, ok := render.LookupTheme(" Classic ")
	assert.True(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Diseños personalizados
// ──────────────────────────────────────────────────────────────────────────────

func TestComposeCustom_DescriptorVacio(t *testing.T) {
	rc := render.NewRenderContext(testCompany(), testInvoice(3), "", true)
	doc := newComposer().ComposeCustom(render.TemplateDescriptor{}, rc)

	require.Equal(t, 1, doc.PageCount())
	assert.Equal(t, []string{render.BlockPlaceholder}, blockNames(doc.Pages[0]))
	assert.Equal(t, "Page 1 of 1", doc.Pages[0].Footer)
}

func TestComposeCustom_RespetaOrden(t *testing.T) {
	desc := render.TemplateDescriptor{Sections: []render.Section{
		render.TotalsSection{},
		render.CustomTextSection{Text: "Gracias", Underline: render.F(true)},
		nil,
		render.HeaderSection{},
		render.PaymentInfoSection{},
	}}
	rc := render.NewRenderContext(testCompany(), testInvoice(40), "", false)
	doc := newComposer().ComposeCustom(desc, rc)

	require.Equal(t, 1, doc.PageCount(), "el modo personalizado no pagina")
	assert.Equal(t, []string{"totals", "customText", "header"}, blockNames(doc.Pages[0]))

	text, _ := doc.Pages[0].Block(string(render.KindCustomText))
	assert.True(t, text.Nodes[0].Font.Underline)
}

func TestComposeCustom_Encabezado(t *testing.T) {
	company := testCompany()
	company.Logo = []byte{0x89, 'P', 'N', 'G'}
	company.LogoFormat = "png"
	rc := render.NewRenderContext(company, testInvoice(1), "", false)

	withLogo := newComposer().ComposeCustom(render.TemplateDescriptor{Sections: []render.Section{render.HeaderSection{}}}, rc)
	h, _ := withLogo.Pages[0].Block(string(render.KindHeader))
	assert.Equal(t, render.NodeImage, h.Nodes[0].Kind)
	assert.Equal(t, []string{"INVOICE", "Invoice #INV-001"}, h.Lines())

	noLogo := newComposer().ComposeCustom(render.TemplateDescriptor{Sections: []render.Section{
		render.HeaderSection{ShowLogo: render.F(false), Title: "RECIBO"},
	}}, rc)
	h, _ = noLogo.Pages[0].Block(string(render.KindHeader))
	assert.Equal(t, render.NodeText, h.Nodes[0].Kind)
	assert.Equal(t, "RECIBO", h.Nodes[0].Text)
}

func TestComposeCustom_CamposVaciosOmitidos(t *testing.T) {
	company := entity.Company{Name: "Solo Nombre"}
	rc := render.NewRenderContext(company, testInvoice(1), "", true)
	doc := newComposer().ComposeCustom(render.TemplateDescriptor{Sections: []render.Section{
		render.CompanyInfoSection{},
		render.PaymentInfoSection{},
	}}, rc)

	info, _ := doc.Pages[0].Block(string(render.KindCompanyInfo))
	assert.Equal(t, []string{"Solo Nombre"}, info.Lines())

	pay, _ := doc.Pages[0].Block(string(render.KindPaymentInfo))
	assert.Equal(t, []string{
		"Payment Information",
		"Bank Name: N/A",
		"Account Name: N/A",
		"Account Number: N/A",
	}, pay.Lines())
}

func TestComposeCustom_TotalesOpcionales(t *testing.T) {
	inv := testInvoice(1)
	inv.Currency = "USD"
	inv.Discount = decimal.NewFromInt(50)
	inv.Shipping = decimal.NewFromInt(20)
	inv.Tax = decimal.Zero
	inv.Total = decimal.NewFromInt(970)
	rc := render.NewRenderContext(testCompany(), inv, "", false)

	doc := newComposer().ComposeCustom(render.TemplateDescriptor{Sections: []render.Section{render.TotalsSection{}}}, rc)
	totals, _ := doc.Pages[0].Block(string(render.KindTotals))
	assert.Equal(t, []string{"Subtotal: $1,000.00", "Discount: -$50.00", "Shipping: $20.00", "Total: $970.00"}, totals.Lines())
}

func TestComposeCustom_TotalesNegativosOmitidos(t *testing.T) {
	inv := testInvoice(1)
	inv.Currency = "USD"
	inv.Discount = decimal.NewFromInt(-5)
	inv.Tax = decimal.NewFromInt(-3)
	inv.Shipping = decimal.NewFromInt(-1)
	inv.Total = decimal.NewFromInt(1000)
	rc := render.NewRenderContext(testCompany(), inv, "", false)

	doc := newComposer().ComposeCustom(render.TemplateDescriptor{Sections: []render.Section{render.TotalsSection{}}}, rc)
	totals, _ := doc.Pages[0].Block(string(render.KindTotals))
	assert.Equal(t, []string{"Subtotal: $1,000.00", "Total: $1,000.00"}, totals.Lines())

	fixed := newComposer().ComposeFixed("classic", rc)
	totals, _ = fixed.Pages[0].Block(string(render.KindTotals))
	assert.Equal(t, []string{"Subtotal: $1,000.00", "Total: $1,000.00"}, totals.Lines())
}

func TestCompose_Determinista(t *testing.T) {
	marshal := func(doc *render.Document) []byte {
		t.Helper()
		b, err := json.Marshal(doc)
		require.NoError(t, err)
		return b
	}

	for _, name := range render.ThemeNames() {
		first := marshal(newComposer().ComposeFixed(name, render.NewRenderContext(testCompany(), testInvoice(20), "", true)))
		second := marshal(newComposer().ComposeFixed(name, render.NewRenderContext(testCompany(), testInvoice(20), "", true)))
		assert.Equal(t, first, second, "diseño %s", name)
	}

	raw := []byte(`[
		{"kind":"header","props":{"padding":4}},
		{"kind":"companyInfo"},
		{"kind":"customerInfo"},
		{"kind":"itemsTable","props":{"striped":true}},
		{"kind":"totals"},
		{"kind":"paymentInfo"},
		{"kind":"customText","props":{"text":"Gracias"}},
		{"kind":"divider"}
	]`)
	first := marshal(newComposer().ComposeCustomJSON(raw, render.NewRenderContext(testCompany(), testInvoice(3), "#10B981", true)))
	second := marshal(newComposer().ComposeCustomJSON(raw, render.NewRenderContext(testCompany(), testInvoice(3), "#10B981", true)))
	assert.Equal(t, first, second)
}

func TestComposeFixed_AcentoPorDiseno(t *testing.T) {
	for _, theme := range render.Themes() {
		rc := render.NewRenderContext(testCompany(), testInvoice(1), "", false)
		doc := newComposer().ComposeFixed(theme.Name, rc)
		assert.Equal(t, theme.Accent, doc.Accent, theme.Name)
		assert.Equal(t, render.BrandColor, rc.Accent(), "el contexto original no cambia")
		assert.False(t, rc.HasAccent())
	}

	classic, ok := render.LookupTheme("classic")
	require.True(t, ok)
	assert.NotEqual(t, render.BrandColor, classic.Accent)

	rc := render.NewRenderContext(testCompany(), testInvoice(1), "#10b981", false)
	assert.True(t, rc.HasAccent())
	assert.Equal(t, "#10B981", newComposer().ComposeFixed("classic", rc).Accent, "el acento explícito gana")

	rc = render.NewRenderContext(testCompany(), testInvoice(1), "rojo", false)
	assert.Equal(t, "#1F2937", newComposer().ComposeFixed("classic", rc).Accent, "un acento inválido cuenta como ausente")
}

func TestComposeCustomJSON_DescriptorIlegible(t *testing.T) {
	rc := render.NewRenderContext(testCompany(), testInvoice(1), "", false)
	doc := newComposer().ComposeCustomJSON([]byte(`{"sections": 7}`), rc)
	assert.Equal(t, []string{render.BlockPlaceholder}, blockNames(doc.Pages[0]))

	doc = newComposer().ComposeCustomJSON([]byte(`[{"kind":"mystery"},{"kind":"divider"}]`), rc)
	assert.Equal(t, []string{"divider"}, blockNames(doc.Pages[0]))
}
