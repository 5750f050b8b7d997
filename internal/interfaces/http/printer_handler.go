package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/toner-control-api/internal/application/dto"
	"github.com/jhoicas/toner-control-api/internal/application/usecase"
	"github.com/jhoicas/toner-control-api/internal/domain"
	"github.com/jhoicas/toner-control-api/internal/domain/repository"
)

// PrinterHandler maneja el CRUD de impresoras (protegido).
type PrinterHandler struct {
	uc *usecase.PrinterUseCase
}

// NewPrinterHandler construye el handler.
func NewPrinterHandler(uc *usecase.PrinterUseCase) *PrinterHandler {
	return &PrinterHandler{uc: uc}
}

// Create godoc
// @Summary      Crear impresora
// @Tags         printers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePrinterRequest  true  "name requerido"
// @Success      201   {object}  dto.PrinterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/printers [post]
func (h *PrinterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePrinterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	printer, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return printerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(printer)
}

// GetByID godoc
// @Summary      Obtener impresora por ID
// @Tags         printers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la impresora"
// @Success      200  {object}  dto.PrinterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/printers/{id} [get]
func (h *PrinterHandler) GetByID(c *fiber.Ctx) error {
	printer, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return printerError(c, err)
	}
	if printer == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "impresora no encontrada"})
	}
	return c.JSON(printer)
}

// Update godoc
// @Summary      Actualizar impresora
// @Tags         printers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "UUID de la impresora"
// @Param        body  body  dto.UpdatePrinterRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.PrinterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/printers/{id} [put]
func (h *PrinterHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePrinterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	printer, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return printerError(c, err)
	}
	if printer == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "impresora no encontrada"})
	}
	return c.JSON(printer)
}

// ToggleActive godoc
// @Summary      Activar/desactivar impresora (borrado lógico)
// @Tags         printers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la impresora"
// @Success      200  {object}  dto.PrinterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/printers/{id}/toggle-active [patch]
func (h *PrinterHandler) ToggleActive(c *fiber.Ctx) error {
	printer, err := h.uc.ToggleActive(c.Context(), c.Params("id"))
	if err != nil {
		return printerError(c, err)
	}
	if printer == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "impresora no encontrada"})
	}
	return c.JSON(printer)
}

// List godoc
// @Summary      Listar impresoras
// @Tags         printers
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "busca en name, brand, model, location e ip"
// @Param        active  query  bool    false  "solo activas"
// @Param        page    query  int     false  "página (default 1)"
// @Param        limit   query  int     false  "tamaño de página (default 20, máx 100)"
// @Success      200  {object}  dto.PrinterListResponse
// @Router       /api/printers [get]
func (h *PrinterHandler) List(c *fiber.Ctx) error {
	filter := repository.PrinterFilter{
		Search:     c.Query("q"),
		OnlyActive: c.QueryBool("active"),
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	list, err := h.uc.List(c.Context(), filter, page)
	if err != nil {
		return printerError(c, err)
	}
	return c.JSON(list)
}

func printerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "impresora no encontrada"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
