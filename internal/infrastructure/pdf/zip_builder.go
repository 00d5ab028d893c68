package pdf

import (
	"archive/zip"
	"bytes"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/firmaflow/ledger/internal/application/billing"
)

var _ billing.Archiver = (*ZipArchiver)(nil)

// ZipArchiver empaqueta los PDF de un lote en un ZIP en memoria.
type ZipArchiver struct {
	now func() time.Time
}

// NewZipArchiver construye el empaquetador.
func NewZipArchiver() *ZipArchiver {
	return &ZipArchiver{now: time.Now}
}

// Archive escribe las entradas en el orden recibido. Los PDF ya están
// comprimidos, por lo que se guardan sin deflate.
func (a *ZipArchiver) Archive(entries []billing.ArchiveEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Store,
			Modified: a.now(),
		})
		if err != nil {
			return nil, errors.Wrapf(err, "zip: crear entrada %s", e.Name)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return nil, errors.Wrapf(err, "zip: escribir %s", e.Name)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "zip: cerrar archivo")
	}
	return buf.Bytes(), nil
}
