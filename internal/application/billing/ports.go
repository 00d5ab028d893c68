package billing

import (
	"context"

	"github.com/firmaflow/ledger/internal/domain/repository"
	"github.com/firmaflow/ledger/internal/render"
)

// DocumentPDFGenerator imprime un documento compuesto. La implementación vive
// en infrastructure/pdf.
type DocumentPDFGenerator interface {
	GeneratePDF(ctx context.Context, doc *render.Document) ([]byte, error)
}

// ArchiveEntry archivo dentro de un paquete ZIP.
type ArchiveEntry struct {
	Name string
	Data []byte
}

// Archiver empaqueta varios archivos en uno (ZIP para el render por lotes).
type Archiver interface {
	Archive(entries []ArchiveEntry) ([]byte, error)
}

// TxRunner ejecuta una función dentro de una transacción con los repos del almacén.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		templates repository.TemplateRepository,
		renders repository.RenderRepository,
	) error) error
}

// DescriptorSource resuelve un diseño guardado ya parseado.
type DescriptorSource interface {
	Descriptor(ctx context.Context, id string) (*StoredDescriptor, error)
}
