package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/firmaflow/ledger/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Service   string
	Invoices  *billing.PDFUseCase
	Templates *billing.TemplateUseCase // nil = sin almacén de diseños
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.Service})
	})

	api := app.Group("/api")

	// Invoices
	invoiceHandler := NewInvoiceHandler(deps.Invoices)
	invoices := api.Group("/invoices")
	invoices.Post("/pdf", invoiceHandler.RenderPDF)
	invoices.Post("/pdf/batch", invoiceHandler.RenderBatch)
	invoices.Post("/preview", invoiceHandler.Preview)
	api.Get("/renders", invoiceHandler.ListRenders)

	// Templates
	if deps.Templates == nil {
		return
	}
	templateHandler := NewTemplateHandler(deps.Templates)
	templates := api.Group("/templates")
	templates.Get("/fixed", templateHandler.Fixed)
	templates.Post("/", templateHandler.Create)
	templates.Get("/", templateHandler.List)
	templates.Get("/:id", templateHandler.GetByID)
	templates.Put("/:id", templateHandler.Update)
	templates.Delete("/:id", templateHandler.Delete)
}
