// render_invoice genera el PDF de una factura desde un archivo JSON con el
// mismo cuerpo que POST /api/invoices/pdf, sin base de datos.
//
// Uso: go run ./cmd/render_invoice request.json [salida.pdf|salida.json]
// Si la salida termina en .json se escribe el árbol del documento (preview).
// Por defecto escribe invoice_<número>.pdf en el directorio actual.
// Archivos exportados en Windows-1252 se convierten a UTF-8 antes de parsear.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/firmaflow/ledger/internal/application/billing"
	"github.com/firmaflow/ledger/internal/application/dto"
	infrapdf "github.com/firmaflow/ledger/internal/infrastructure/pdf"
	"github.com/firmaflow/ledger/internal/render"
	"github.com/firmaflow/ledger/pkg/config"
	"github.com/firmaflow/ledger/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: render_invoice request.json [salida.pdf|salida.json]")
		os.Exit(2)
	}
	raw, err := readUTF8(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer petición: %v\n", err)
		os.Exit(1)
	}
	var req dto.RenderInvoiceRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar JSON: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Output: os.Stderr})

	composer := render.NewComposer(log.Zerolog(),
		render.WithItemsPerPage(cfg.Render.ItemsPerPage),
		render.WithPageSetup(render.PageSetup{
			Size:         cfg.Render.PageSize,
			MarginPt:     cfg.Render.MarginPt,
			BaseFontSize: cfg.Render.BaseFontSize,
		}),
	)
	uc := billing.NewPDFUseCase(
		composer,
		infrapdf.NewMarotoPDFGenerator(log.Zerolog()),
		nil, nil, // sin almacén de diseños ni historial
		infrapdf.NewZipArchiver(),
		billing.RenderDefaults{Template: cfg.Render.DefaultTemplate, Accent: cfg.Render.AccentColor},
		log.Zerolog(),
	)

	ctx := context.Background()
	outPath := ""
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	if strings.EqualFold(filepath.Ext(outPath), ".json") {
		preview, err := uc.Preview(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Componer: %v\n", err)
			os.Exit(1)
		}
		data, err := json.MarshalIndent(preview, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Serializar vista previa: %v\n", err)
			os.Exit(1)
		}
		writeFile(outPath, data)
		fmt.Printf("Generado %s: %d páginas\n", outPath, preview.Document.PageCount())
		return
	}

	pdfBytes, filename, err := uc.RenderPDF(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar PDF: %v\n", err)
		os.Exit(1)
	}
	if outPath == "" {
		outPath = filename
	}
	writeFile(outPath, pdfBytes)
	fmt.Printf("Generado %s (%d bytes)\n", outPath, len(pdfBytes))
}

// readUTF8 lee el archivo; si no es UTF-8 válido lo decodifica como Windows-1252.
func readUTF8(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if utf8.Valid(data) {
		return data, nil
	}
	return io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder()))
}

func writeFile(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir archivo: %v\n", err)
		os.Exit(1)
	}
}
