package billing_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/firmaflow/ledger/internal/application/billing"
	"github.com/firmaflow/ledger/internal/domain/entity"
	"github.com/firmaflow/ledger/internal/domain/repository"
	"github.com/firmaflow/ledger/internal/render"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks
// ──────────────────────────────────────────────────────────────────────────────

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GeneratePDF(ctx context.Context, doc *render.Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockRenderRepo struct {
	mock.Mock
}

func (m *MockRenderRepo) Create(ctx context.Context, doc *entity.RenderedDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockRenderRepo) List(ctx context.Context, companyName string, limit, offset int) ([]*entity.RenderedDocument, error) {
	args := m.Called(ctx, companyName, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.RenderedDocument), args.Error(1)
}

type MockTemplateRepo struct {
	mock.Mock
}

func (m *MockTemplateRepo) Create(ctx context.Context, tpl *entity.InvoiceTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockTemplateRepo) GetByID(ctx context.Context, id string) (*entity.InvoiceTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.InvoiceTemplate), args.Error(1)
}

func (m *MockTemplateRepo) GetForUpdate(ctx context.Context, id string) (*entity.InvoiceTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.InvoiceTemplate), args.Error(1)
}

func (m *MockTemplateRepo) Update(ctx context.Context, tpl *entity.InvoiceTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockTemplateRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTemplateRepo) ListByCompany(ctx context.Context, companyName string, limit, offset int) ([]*entity.InvoiceTemplate, error) {
	args := m.Called(ctx, companyName, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.InvoiceTemplate), args.Error(1)
}

type MockDescriptorSource struct {
	mock.Mock
}

func (m *MockDescriptorSource) Descriptor(ctx context.Context, id string) (*billing.StoredDescriptor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.StoredDescriptor), args.Error(1)
}

// fakeTx ejecuta fn directamente con los repos dados, sin transacción real.
type fakeTx struct {
	templates repository.TemplateRepository
	renders   repository.RenderRepository
}

func (f fakeTx) Run(_ context.Context, fn func(repository.TemplateRepository, repository.RenderRepository) error) error {
	return fn(f.templates, f.renders)
}

// captureArchiver guarda las entradas recibidas.
type captureArchiver struct {
	mu      sync.Mutex
	entries []billing.ArchiveEntry
}

func (a *captureArchiver) Archive(entries []billing.ArchiveEntry) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append([]billing.ArchiveEntry(nil), entries...)
	return []byte("PK-fake"), nil
}
