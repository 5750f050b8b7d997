package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/toner-control-api/internal/application/dto"
	"github.com/jhoicas/toner-control-api/internal/domain"
	"github.com/jhoicas/toner-control-api/internal/domain/entity"
	"github.com/jhoicas/toner-control-api/internal/domain/repository"
	"github.com/jhoicas/toner-control-api/pkg/strutil"
)

// PrinterUseCase casos de uso CRUD para impresoras.
type PrinterUseCase struct {
	repo repository.PrinterRepository
}

// NewPrinterUseCase construye el caso de uso.
func NewPrinterUseCase(repo repository.PrinterRepository) *PrinterUseCase {
	return &PrinterUseCase{repo: repo}
}

// Create registra una impresora.
func (uc *PrinterUseCase) Create(ctx context.Context, in dto.CreatePrinterRequest) (*dto.PrinterResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	printer := &entity.Printer{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Brand:        in.Brand,
		Model:        in.Model,
		Location:     in.Location,
		SerialNumber: in.SerialNumber,
		IP:           in.IP,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, printer); err != nil {
		return nil, err
	}
	return ToPrinterResponse(printer), nil
}

// GetByID obtiene una impresora por ID. Devuelve nil si no existe.
func (uc *PrinterUseCase) GetByID(ctx context.Context, id string) (*dto.PrinterResponse, error) {
	printer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if printer == nil {
		return nil, nil
	}
	return ToPrinterResponse(printer), nil
}

// Update actualiza los datos de la impresora.
func (uc *PrinterUseCase) Update(ctx context.Context, id string, in dto.UpdatePrinterRequest) (*dto.PrinterResponse, error) {
	printer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if printer == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		printer.Name = *in.Name
	}
	if in.Brand != nil {
		printer.Brand = *in.Brand
	}
	if in.Model != nil {
		printer.Model = *in.Model
	}
	if in.Location != nil {
		printer.Location = *in.Location
	}
	if in.SerialNumber != nil {
		printer.SerialNumber = *in.SerialNumber
	}
	if in.IP != nil {
		printer.IP = *in.IP
	}
	printer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, printer); err != nil {
		return nil, err
	}
	return ToPrinterResponse(printer), nil
}

// ToggleActive invierte el flag activo (borrado suave).
func (uc *PrinterUseCase) ToggleActive(ctx context.Context, id string) (*dto.PrinterResponse, error) {
	printer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if printer == nil {
		return nil, nil
	}
	printer.IsActive = !printer.IsActive
	printer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, printer); err != nil {
		return nil, err
	}
	return ToPrinterResponse(printer), nil
}

// List lista impresoras con búsqueda y paginación.
func (uc *PrinterUseCase) List(ctx context.Context, filter repository.PrinterFilter, page dto.PageRequest) (*dto.PrinterListResponse, error) {
	page.Normalize()
	filter.Search = strutil.Fold(filter.Search)
	items, err := uc.repo.List(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.PrinterListResponse{
		Items: make([]dto.PrinterResponse, 0, len(items)),
		Total: total,
		Page:  page.Page,
		Pages: totalPages(total, page.Limit),
	}
	for _, p := range items {
		out.Items = append(out.Items, *ToPrinterResponse(p))
	}
	return out, nil
}

// ToPrinterResponse mapea la entidad al DTO HTTP.
func ToPrinterResponse(p *entity.Printer) *dto.PrinterResponse {
	if p == nil {
		return nil
	}
	return &dto.PrinterResponse{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		Model:        p.Model,
		Location:     p.Location,
		SerialNumber: p.SerialNumber,
		IP:           p.IP,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
