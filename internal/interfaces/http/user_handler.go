package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/toner-control-api/internal/application/dto"
	"github.com/jhoicas/toner-control-api/internal/application/usecase"
	"github.com/jhoicas/toner-control-api/internal/domain"
	"github.com/jhoicas/toner-control-api/internal/domain/repository"
)

// UserHandler maneja perfil propio y administración de usuarios (protegido).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/me/profile [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.GetProfile(c.Context(), GetUserID(c))
	if err != nil {
		return userError(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(user)
}

// MeCompact godoc
// @Summary      Perfil compacto del usuario autenticado
// @Description  Versión mínima para hidratar el cliente al arrancar.
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserCompactResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/me/compact [get]
func (h *UserHandler) MeCompact(c *fiber.Ctx) error {
	user, err := h.uc.GetCompact(c.Context(), GetUserID(c))
	if err != nil {
		return userError(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(user)
}

// GetByID godoc
// @Summary      Obtener usuario por ID (admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.uc.GetProfile(c.Context(), c.Params("id"))
	if err != nil {
		return userError(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(user)
}

// Update godoc
// @Summary      Actualizar usuario (admin)
// @Description  Actualización parcial. No permite dejar el sistema sin un admin activo.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "UUID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return userError(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(user)
}

// ToggleActive godoc
// @Summary      Activar/desactivar usuario (admin, borrado lógico)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/toggle-active [patch]
func (h *UserHandler) ToggleActive(c *fiber.Ctx) error {
	user, err := h.uc.ToggleActive(c.Context(), c.Params("id"))
	if err != nil {
		return userError(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(user)
}

// List godoc
// @Summary      Listar usuarios (admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "busca en name y email"
// @Param        role    query  string  false  "admin | tecnico | usuario"
// @Param        active  query  bool    false  "solo activos"
// @Param        page    query  int     false  "página (default 1)"
// @Param        limit   query  int     false  "tamaño de página (default 20, máx 100)"
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	filter := repository.UserFilter{
		Search:     c.Query("q"),
		Role:       c.Query("role"),
		OnlyActive: c.QueryBool("active"),
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	list, err := h.uc.List(c.Context(), filter, page)
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(list)
}

func userError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	case errors.Is(err, domain.ErrLastActiveAdmin):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LAST_ACTIVE_ADMIN", Message: "no se puede dejar el sistema sin un admin activo"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
