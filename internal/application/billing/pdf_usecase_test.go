package billing_test

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/firmaflow/ledger/internal/application/billing"
	"github.com/firmaflow/ledger/internal/application/dto"
	"github.com/firmaflow/ledger/internal/domain"
	"github.com/firmaflow/ledger/internal/domain/entity"
	"github.com/firmaflow/ledger/internal/render"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fakePDF = []byte("%PDF-1.3 fake")

func validRequest(number string) dto.RenderInvoiceRequest {
	return dto.RenderInvoiceRequest{
		Company: dto.CompanyInput{Name: "Acme Ltd", Email: "billing@acme.test"},
		Invoice: dto.InvoiceInput{
			Number:    number,
			IssueDate: "2024-03-05",
			Currency:  "ngn",
			Customer:  dto.CustomerInput{Name: "Jane Doe"},
			Items: []dto.LineItemInput{{
				Description: "Consultoría",
				Quantity:    decimal.NewFromInt(1),
				Rate:        decimal.NewFromInt(1000),
				Amount:      decimal.NewFromInt(1000),
			}},
			Subtotal: decimal.NewFromInt(1000),
			Tax:      decimal.NewFromInt(75),
			Total:    decimal.NewFromInt(1075),
		},
	}
}

type fixture struct {
	gen       *MockGenerator
	renders   *MockRenderRepo
	templates *MockDescriptorSource
	archiver  *captureArchiver
	uc        *billing.PDFUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		gen:       new(MockGenerator),
		renders:   new(MockRenderRepo),
		templates: new(MockDescriptorSource),
		archiver:  &captureArchiver{},
	}
	f.uc = billing.NewPDFUseCase(
		render.NewComposer(zerolog.Nop()),
		f.gen, f.templates, f.renders, f.archiver,
		billing.RenderDefaults{Template: "classic", BatchWorkers: 2, BatchMaxInvoices: 5},
		zerolog.Nop(),
	)
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// RenderPDF
// ──────────────────────────────────────────────────────────────────────────────

func TestRenderPDF_DisenoFijoRegistraHistorial(t *testing.T) {
	f := newFixture(t)
	f.gen.On("GeneratePDF", mock.Anything, mock.MatchedBy(func(d *render.Document) bool {
		return d.Mode == entity.RenderModeFixed && d.Template == "classic"
	})).Return(fakePDF, nil)

	sum := sha256.Sum256(fakePDF)
	f.renders.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.RenderedDocument) bool {
		return r.InvoiceNumber == "INV-001" &&
			r.Template == "classic" &&
			r.Pages == 1 &&
			r.Currency == "NGN" &&
			r.Total.Equal(decimal.NewFromInt(1075)) &&
			r.Checksum == hex.EncodeToString(sum[:]) &&
			r.SizeBytes == len(fakePDF)
	})).Return(nil)

	pdf, filename, err := f.uc.RenderPDF(context.Background(), validRequest("INV-001"))
	require.NoError(t, err)
	assert.Equal(t, fakePDF, pdf)
	assert.Equal(t, "invoice_INV-001.pdf", filename)
	f.gen.AssertExpectations(t)
	f.renders.AssertExpectations(t)
}

func TestRenderPDF_FalloDelHistorialNoEsFatal(t *testing.T) {
	f := newFixture(t)
	f.gen.On("GeneratePDF", mock.Anything, mock.Anything).Return(fakePDF, nil)
	f.renders.On("Create", mock.Anything, mock.Anything).Return(errors.New("db caída"))

	pdf, _, err := f.uc.RenderPDF(context.Background(), validRequest("INV-002"))
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestRenderPDF_PeticionInvalida(t *testing.T) {
	f := newFixture(t)
	req := validRequest("")
	req.Accent = "azul"

	_, _, err := f.uc.RenderPDF(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	f.gen.AssertNotCalled(t, "GeneratePDF", mock.Anything, mock.Anything)
}

func TestRenderPDF_FechaInvalida(t *testing.T) {
	f := newFixture(t)
	req := validRequest("INV-003")
	req.Invoice.DueDate = "05/03/2024"

	_, _, err := f.uc.RenderPDF(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRenderPDF_FalloDelGenerador(t *testing.T) {
	f := newFixture(t)
	f.gen.On("GeneratePDF", mock.Anything, mock.Anything).Return(nil, errors.New("maroto"))

	_, _, err := f.uc.RenderPDF(context.Background(), validRequest("INV-004"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRenderFailed))
	f.renders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRenderPDF_DisenoGuardado(t *testing.T) {
	f := newFixture(t)
	const id = "7f1c1c1e-3a43-4a59-9d8a-0f4f7b0c2c11"
	desc, _, err := render.ParseDescriptor([]byte(`[{"kind":"header"},{"kind":"totals"}]`))
	require.NoError(t, err)
	f.templates.On("Descriptor", mock.Anything, id).Return(&billing.StoredDescriptor{
		Template:   &entity.InvoiceTemplate{ID: id, Accent: "#111111"},
		Descriptor: desc,
	}, nil)
	f.gen.On("GeneratePDF", mock.Anything, mock.MatchedBy(func(d *render.Document) bool {
		return d.Mode == entity.RenderModeCustom && d.Accent == "#111111" && len(d.Pages[0].Blocks) == 2
	})).Return(fakePDF, nil)
	f.renders.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.RenderedDocument) bool {
		return r.Template == id && r.Mode == entity.RenderModeCustom
	})).Return(nil)

	req := validRequest("INV-005")
	req.TemplateID = id
	_, _, err = f.uc.RenderPDF(context.Background(), req)
	require.NoError(t, err)
	f.gen.AssertExpectations(t)
	f.renders.AssertExpectations(t)
}

func TestRenderPDF_DisenoGuardadoInexistente(t *testing.T) {
	f := newFixture(t)
	const id = "7f1c1c1e-3a43-4a59-9d8a-0f4f7b0c2c12"
	f.templates.On("Descriptor", mock.Anything, id).
		Return(nil, errors.Mark(errors.New("template not found"), domain.ErrNotFound))

	req := validRequest("INV-006")
	req.TemplateID = id
	_, _, err := f.uc.RenderPDF(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRenderPDF_SeccionesEnLineaConFormaInvalida(t *testing.T) {
	f := newFixture(t)
	req := validRequest("INV-007")
	req.Sections = json.RawMessage(`"header"`)

	_, _, err := f.uc.RenderPDF(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRenderPDF_Logo(t *testing.T) {
	f := newFixture(t)
	png := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 16)...)
	f.gen.On("GeneratePDF", mock.Anything, mock.MatchedBy(func(d *render.Document) bool {
		h, ok := d.Pages[0].Block(string(render.KindHeader))
		return ok && h.Nodes[0].Kind == render.NodeImage && h.Nodes[0].Image.Format == "png"
	})).Return(fakePDF, nil)
	f.renders.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := validRequest("INV-008")
	req.Company.Logo = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	_, _, err := f.uc.RenderPDF(context.Background(), req)
	require.NoError(t, err)
	f.gen.AssertExpectations(t)
}

func TestRenderPDF_LogoNoSoportado(t *testing.T) {
	f := newFixture(t)
	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")
	req := validRequest("INV-009")
	req.Company.Logo = base64.StdEncoding.EncodeToString(gif)

	_, _, err := f.uc.RenderPDF(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// Preview y lotes
// ──────────────────────────────────────────────────────────────────────────────

func TestPreview_DevuelveAdvertencias(t *testing.T) {
	f := newFixture(t)
	req := validRequest("INV-010")
	req.Sections = json.RawMessage(`[{"kind":"totals"},{"kind":"qr"}]`)

	resp, err := f.uc.Preview(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, render.ReasonUnknownKind, resp.Warnings[0].Reason)
	assert.Equal(t, 1, resp.Document.PageCount())
	assert.True(t, resp.Document.Pages[0].Has(string(render.KindTotals)))
	f.gen.AssertNotCalled(t, "GeneratePDF", mock.Anything, mock.Anything)
}

func TestRenderBatch_OrdenYNombresUnicos(t *testing.T) {
	f := newFixture(t)
	f.gen.On("GeneratePDF", mock.Anything, mock.Anything).Return(fakePDF, nil)
	f.renders.On("Create", mock.Anything, mock.Anything).Return(nil)

	reqs := []dto.RenderInvoiceRequest{validRequest("B"), validRequest("A"), validRequest("B")}
	out, err := f.uc.RenderBatch(context.Background(), reqs)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK-fake"), out)

	require.Len(t, f.archiver.entries, 3)
	assert.Equal(t, "invoice_B.pdf", f.archiver.entries[0].Name)
	assert.Equal(t, "invoice_A.pdf", f.archiver.entries[1].Name)
	assert.Equal(t, "invoice_B_2.pdf", f.archiver.entries[2].Name)
}

func TestRenderBatch_SufijoNoChocaConNumeroReal(t *testing.T) {
	f := newFixture(t)
	f.gen.On("GeneratePDF", mock.Anything, mock.Anything).Return(fakePDF, nil)
	f.renders.On("Create", mock.Anything, mock.Anything).Return(nil)

	reqs := []dto.RenderInvoiceRequest{validRequest("A"), validRequest("A"), validRequest("A_2")}
	_, err := f.uc.RenderBatch(context.Background(), reqs)
	require.NoError(t, err)

	require.Len(t, f.archiver.entries, 3)
	names := make(map[string]bool, 3)
	for _, e := range f.archiver.entries {
		assert.False(t, names[e.Name], "nombre repetido %s", e.Name)
		names[e.Name] = true
	}
	assert.Equal(t, "invoice_A.pdf", f.archiver.entries[0].Name)
	assert.Equal(t, "invoice_A_2.pdf", f.archiver.entries[1].Name)
	assert.Equal(t, "invoice_A_2_2.pdf", f.archiver.entries[2].Name)
}

func TestRenderBatch_UnaFallaCancelaElLote(t *testing.T) {
	f := newFixture(t)
	f.gen.On("GeneratePDF", mock.Anything, mock.Anything).Return(fakePDF, nil)
	f.renders.On("Create", mock.Anything, mock.Anything).Return(nil)

	reqs := []dto.RenderInvoiceRequest{validRequest("OK"), validRequest("")}
	_, err := f.uc.RenderBatch(context.Background(), reqs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, f.archiver.entries)
}

func TestRenderBatch_Limites(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.RenderBatch(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	many := make([]dto.RenderInvoiceRequest, 6)
	_, err = f.uc.RenderBatch(context.Background(), many)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestListRenders(t *testing.T) {
	f := newFixture(t)
	f.renders.On("List", mock.Anything, "Acme Ltd", 20, 0).Return([]*entity.RenderedDocument{
		{ID: "r1", CompanyName: "Acme Ltd", InvoiceNumber: "INV-1", Pages: 2},
	}, nil)

	resp, err := f.uc.ListRenders(context.Background(), "Acme Ltd", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "INV-1", resp.Items[0].InvoiceNumber)
	assert.Equal(t, 20, resp.Page.Limit)
}

func TestInvoiceFilename(t *testing.T) {
	assert.Equal(t, "invoice_INV_2024_01.pdf", billing.InvoiceFilename("INV/2024 01"))
	assert.Equal(t, "invoice_document.pdf", billing.InvoiceFilename(""))
}
