package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/toner-control-api/internal/application/dto"
	"github.com/jhoicas/toner-control-api/internal/application/stock"
	"github.com/jhoicas/toner-control-api/internal/application/usecase"
	"github.com/jhoicas/toner-control-api/internal/domain"
	"github.com/jhoicas/toner-control-api/internal/domain/entity"
	"github.com/jhoicas/toner-control-api/internal/domain/repository"
	"github.com/jhoicas/toner-control-api/pkg/metrics"
)

// ReportGenerator genera el PDF del historial de movimientos.
type ReportGenerator interface {
	Generate(title string, movements []*entity.StockMovementDetail) ([]byte, error)
}

// StockHandler maneja el ledger de movimientos de stock (protegido).
type StockHandler struct {
	uc     *stock.LedgerUseCase
	report ReportGenerator
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.LedgerUseCase, report ReportGenerator) *StockHandler {
	return &StockHandler{uc: uc, report: report}
}

// CreateMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Aplica un movimiento (in suma, out resta sin dejar saldo negativo, adjust fija el saldo)
//
//	y registra la fila de auditoría en la misma transacción.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "toner_id, type (in|out|adjust), quantity; note y printer_id opcionales"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) CreateMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.ApplyMovement(c.Context(), stock.MovementInput{
		TonerID:   in.TonerID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Note:      in.Note,
		PrinterID: in.PrinterID,
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.MovementsRejected.WithLabelValues("invalid_input").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			metrics.MovementsRejected.WithLabelValues("not_found").Inc()
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tóner no encontrado"})
		case errors.Is(err, domain.ErrInsufficientStock):
			metrics.MovementsRejected.WithLabelValues("insufficient_stock").Inc()
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la salida"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	metrics.MovementsApplied.WithLabelValues(result.Movement.Type).Inc()

	return c.Status(fiber.StatusCreated).JSON(dto.ApplyMovementResponse{
		Toner: *usecase.ToTonerResponse(result.Toner),
		Movement: dto.MovementResponse{
			ID:        result.Movement.ID,
			TonerID:   result.Movement.TonerID,
			Type:      result.Movement.Type,
			Quantity:  result.Movement.Quantity,
			Note:      result.Movement.Note,
			PrinterID: result.Movement.PrinterID,
			UserID:    result.Movement.UserID,
			CreatedAt: result.Movement.CreatedAt,
		},
	})
}

// List godoc
// @Summary      Listar movimientos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        q           query  string  false  "busca en la nota"
// @Param        type        query  string  false  "in | out | adjust"
// @Param        toner_id    query  string  false  "filtrar por tóner"
// @Param        printer_id  query  string  false  "filtrar por impresora"
// @Param        page        query  int     false  "página (default 1)"
// @Param        limit       query  int     false  "tamaño de página (default 20, máx 100)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	filter := movementFilterFromQuery(c)
	page, err := h.uc.ListMovements(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("limit", 0))
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(toMovementListResponse(page))
}

// TonerHistory godoc
// @Summary      Historial de movimientos de un tóner
// @Tags         toners
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "UUID del tóner"
// @Param        page   query  int     false  "página (default 1)"
// @Param        limit  query  int     false  "tamaño de página (default 20, máx 100)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/toners/{id}/history [get]
func (h *StockHandler) TonerHistory(c *fiber.Ctx) error {
	filter := repository.MovementFilter{TonerID: c.Params("id")}
	page, err := h.uc.ListMovements(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("limit", 0))
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(toMovementListResponse(page))
}

// Report godoc
// @Summary      Informe PDF del historial de movimientos
// @Description  Misma semántica de filtros y paginación que el listado, en formato PDF.
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        q           query  string  false  "busca en la nota"
// @Param        type        query  string  false  "in | out | adjust"
// @Param        toner_id    query  string  false  "filtrar por tóner"
// @Param        printer_id  query  string  false  "filtrar por impresora"
// @Param        page        query  int     false  "página (default 1)"
// @Param        limit       query  int     false  "tamaño de página (default 20, máx 100)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/report.pdf [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	filter := movementFilterFromQuery(c)
	page, err := h.uc.ListMovements(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("limit", stock.MaxPageSize))
	if err != nil {
		return stockError(c, err)
	}
	pdfBytes, err := h.report.Generate("Movimientos de stock", page.Items)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos-stock.pdf"`)
	return c.Send(pdfBytes)
}

func movementFilterFromQuery(c *fiber.Ctx) repository.MovementFilter {
	return repository.MovementFilter{
		TonerID:      c.Query("toner_id"),
		PrinterID:    c.Query("printer_id"),
		Type:         c.Query("type"),
		NoteContains: c.Query("q"),
	}
}

func toMovementListResponse(page *stock.MovementPage) dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(page.Items))
	for _, d := range page.Items {
		items = append(items, dto.MovementResponse{
			ID:              d.ID,
			TonerID:         d.TonerID,
			TonerName:       d.TonerName,
			TonerModel:      d.TonerModel,
			TonerSKU:        d.TonerSKU,
			Type:            d.Type,
			Quantity:        d.Quantity,
			Note:            d.Note,
			PrinterID:       d.PrinterID,
			PrinterName:     d.PrinterName,
			PrinterLocation: d.PrinterLocation,
			UserID:          d.UserID,
			UserName:        d.UserName,
			CreatedAt:       d.CreatedAt,
		})
	}
	return dto.MovementListResponse{Items: items, Total: page.Total, Page: page.Page, Pages: page.Pages}
}

func stockError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
