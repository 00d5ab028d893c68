package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/firmaflow/ledger/internal/application/billing"
	"github.com/firmaflow/ledger/internal/application/dto"
)

// TemplateHandler CRUD de diseños personalizados y listado de los fijos.
type TemplateHandler struct {
	uc *billing.TemplateUseCase
}

// NewTemplateHandler construye el handler inyectando el caso de uso.
func NewTemplateHandler(uc *billing.TemplateUseCase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

// Fixed godoc
// @Summary      Diseños fijos disponibles
// @Tags         templates
// @Produce      json
// @Success      200  {object}  dto.FixedTemplatesResponse
// @Router       /api/templates/fixed [get]
func (h *TemplateHandler) Fixed(c *fiber.Ctx) error {
	return c.JSON(h.uc.FixedTemplates())
}

// Create godoc
// @Summary      Guardar diseño personalizado
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TemplateRequest  true  "Diseño"
// @Success      201   {object}  dto.TemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/templates [post]
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var in dto.TemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Diseños de una empresa
// @Tags         templates
// @Produce      json
// @Param        company  query  string  true   "Empresa"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200      {object}  dto.ListTemplatesResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/templates [get]
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), c.Query("company"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener diseño por ID
// @Tags         templates
// @Produce      json
// @Param        id   path  string  true  "ID del diseño"
// @Success      200  {object}  dto.TemplateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/templates/{id} [get]
func (h *TemplateHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar diseño
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del diseño"
// @Param        body  body  dto.TemplateRequest  true  "Diseño"
// @Success      200   {object}  dto.TemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/templates/{id} [put]
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	var in dto.TemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar diseño
// @Tags         templates
// @Param        id   path  string  true  "ID del diseño"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
