package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/firmaflow/ledger/internal/application/billing"
	"github.com/firmaflow/ledger/internal/application/dto"
)

// InvoiceHandler maneja el renderizado de facturas.
type InvoiceHandler struct {
	uc *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// RenderPDF godoc
// @Summary      Generar PDF de una factura
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.RenderInvoiceRequest  true  "Empresa, factura y diseño"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/pdf [post]
func (h *InvoiceHandler) RenderPDF(c *fiber.Ctx) error {
	var in dto.RenderInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	pdfBytes, filename, err := h.uc.RenderPDF(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	return c.Send(pdfBytes)
}

// Preview godoc
// @Summary      Árbol del documento sin imprimir
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RenderInvoiceRequest  true  "Empresa, factura y diseño"
// @Success      200   {object}  dto.PreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.RenderInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Preview(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RenderBatch godoc
// @Summary      Generar varias facturas en un ZIP
// @Tags         invoices
// @Accept       json
// @Produce      application/zip
// @Param        body  body  dto.BatchRenderRequest  true  "Facturas"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/pdf/batch [post]
func (h *InvoiceHandler) RenderBatch(c *fiber.Ctx) error {
	var in dto.BatchRenderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	zipBytes, err := h.uc.RenderBatch(c.UserContext(), in.Invoices)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment("invoices.zip")
	return c.Send(zipBytes)
}

// ListRenders godoc
// @Summary      Historial de documentos generados
// @Tags         invoices
// @Produce      json
// @Param        company  query  string  false  "Empresa emisora"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200      {object}  dto.ListRendersResponse
// @Router       /api/renders [get]
func (h *InvoiceHandler) ListRenders(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListRenders(c.UserContext(), c.Query("company"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
