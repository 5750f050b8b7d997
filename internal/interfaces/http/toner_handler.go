package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/toner-control-api/internal/application/dto"
	"github.com/jhoicas/toner-control-api/internal/application/usecase"
	"github.com/jhoicas/toner-control-api/internal/domain"
	"github.com/jhoicas/toner-control-api/internal/domain/repository"
)

// TonerHandler maneja el CRUD de tóneres (protegido).
type TonerHandler struct {
	uc *usecase.TonerUseCase
}

// NewTonerHandler construye el handler.
func NewTonerHandler(uc *usecase.TonerUseCase) *TonerHandler {
	return &TonerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tóner
// @Tags         toners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTonerRequest  true  "name requerido; sku único si viene"
// @Success      201   {object}  dto.TonerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/toners [post]
func (h *TonerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTonerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	toner, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return tonerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toner)
}

// GetByID godoc
// @Summary      Obtener tóner por ID
// @Tags         toners
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del tóner"
// @Success      200  {object}  dto.TonerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/toners/{id} [get]
func (h *TonerHandler) GetByID(c *fiber.Ctx) error {
	toner, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return tonerError(c, err)
	}
	if toner == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tóner no encontrado"})
	}
	return c.JSON(toner)
}

// Update godoc
// @Summary      Actualizar tóner
// @Description  Actualización parcial. El saldo (current_stock) no se toca aquí: solo vía movimientos de stock.
// @Tags         toners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "UUID del tóner"
// @Param        body  body  dto.UpdateTonerRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.TonerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/toners/{id} [put]
func (h *TonerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTonerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	toner, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return tonerError(c, err)
	}
	if toner == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tóner no encontrado"})
	}
	return c.JSON(toner)
}

// ToggleActive godoc
// @Summary      Activar/desactivar tóner (borrado lógico)
// @Tags         toners
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del tóner"
// @Success      200  {object}  dto.TonerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/toners/{id}/toggle-active [patch]
func (h *TonerHandler) ToggleActive(c *fiber.Ctx) error {
	toner, err := h.uc.ToggleActive(c.Context(), c.Params("id"))
	if err != nil {
		return tonerError(c, err)
	}
	if toner == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tóner no encontrado"})
	}
	return c.JSON(toner)
}

// List godoc
// @Summary      Listar tóneres
// @Tags         toners
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "busca en name, brand, model y sku"
// @Param        active     query  bool    false  "solo activos"
// @Param        low_stock  query  bool    false  "solo con stock bajo (current_stock < min_stock)"
// @Param        page       query  int     false  "página (default 1)"
// @Param        limit      query  int     false  "tamaño de página (default 20, máx 100)"
// @Success      200  {object}  dto.TonerListResponse
// @Router       /api/toners [get]
func (h *TonerHandler) List(c *fiber.Ctx) error {
	filter := repository.TonerFilter{
		Search:     c.Query("q"),
		OnlyActive: c.QueryBool("active"),
		LowStock:   c.QueryBool("low_stock"),
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	list, err := h.uc.List(c.Context(), filter, page)
	if err != nil {
		return tonerError(c, err)
	}
	return c.JSON(list)
}

func tonerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tóner no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_SKU", Message: "ya existe un tóner con ese SKU"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
