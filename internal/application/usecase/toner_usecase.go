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

// TonerUseCase casos de uso CRUD para tóneres. El saldo (CurrentStock) se
// maneja exclusivamente vía movimientos; aquí nunca se toca.
type TonerUseCase struct {
	repo repository.TonerRepository
}

// NewTonerUseCase construye el caso de uso.
func NewTonerUseCase(repo repository.TonerRepository) *TonerUseCase {
	return &TonerUseCase{repo: repo}
}

// Create crea un nuevo tóner. El stock inicia en 0 y se alimenta con
// movimientos de entrada.
func (uc *TonerUseCase) Create(ctx context.Context, in dto.CreateTonerRequest) (*dto.TonerResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	color := in.Color
	if color == "" {
		color = entity.ColorBlack
	}
	if !entity.ValidColor(color) {
		return nil, fmt.Errorf("%w: color inválido", domain.ErrInvalidInput)
	}
	if in.MinStock < 0 {
		return nil, fmt.Errorf("%w: min_stock debe ser >= 0", domain.ErrInvalidInput)
	}
	sku := strutil.CanonicalSKU(in.SKU)
	if sku != "" {
		existing, err := uc.repo.GetBySKU(ctx, sku)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	toner := &entity.Toner{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Brand:        in.Brand,
		Model:        in.Model,
		Color:        color,
		SKU:          sku,
		MinStock:     in.MinStock,
		CurrentStock: 0,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, toner); err != nil {
		return nil, err
	}
	return ToTonerResponse(toner), nil
}

// GetByID obtiene un tóner por ID. Devuelve nil si no existe.
func (uc *TonerUseCase) GetByID(ctx context.Context, id string) (*dto.TonerResponse, error) {
	toner, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if toner == nil {
		return nil, nil
	}
	return ToTonerResponse(toner), nil
}

// Update actualiza los datos maestros del tóner. No permite modificar
// CurrentStock (solo vía movimientos).
func (uc *TonerUseCase) Update(ctx context.Context, id string, in dto.UpdateTonerRequest) (*dto.TonerResponse, error) {
	toner, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if toner == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		toner.Name = *in.Name
	}
	if in.Brand != nil {
		toner.Brand = *in.Brand
	}
	if in.Model != nil {
		toner.Model = *in.Model
	}
	if in.Color != nil {
		if !entity.ValidColor(*in.Color) {
			return nil, fmt.Errorf("%w: color inválido", domain.ErrInvalidInput)
		}
		toner.Color = *in.Color
	}
	if in.SKU != nil {
		sku := strutil.CanonicalSKU(*in.SKU)
		if sku != "" && sku != toner.SKU {
			existing, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != toner.ID {
				return nil, domain.ErrDuplicate
			}
		}
		toner.SKU = sku
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, fmt.Errorf("%w: min_stock debe ser >= 0", domain.ErrInvalidInput)
		}
		toner.MinStock = *in.MinStock
	}
	toner.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, toner); err != nil {
		return nil, err
	}
	return ToTonerResponse(toner), nil
}

// ToggleActive invierte el flag activo (borrado suave: el tóner nunca se
// elimina para preservar la integridad referencial del ledger).
func (uc *TonerUseCase) ToggleActive(ctx context.Context, id string) (*dto.TonerResponse, error) {
	toner, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if toner == nil {
		return nil, nil
	}
	toner.IsActive = !toner.IsActive
	toner.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, toner); err != nil {
		return nil, err
	}
	return ToTonerResponse(toner), nil
}

// List lista tóneres con búsqueda, filtros y paginación.
func (uc *TonerUseCase) List(ctx context.Context, filter repository.TonerFilter, page dto.PageRequest) (*dto.TonerListResponse, error) {
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
	out := &dto.TonerListResponse{
		Items: make([]dto.TonerResponse, 0, len(items)),
		Total: total,
		Page:  page.Page,
		Pages: totalPages(total, page.Limit),
	}
	for _, t := range items {
		out.Items = append(out.Items, *ToTonerResponse(t))
	}
	return out, nil
}

// ToTonerResponse mapea la entidad al DTO HTTP.
func ToTonerResponse(t *entity.Toner) *dto.TonerResponse {
	if t == nil {
		return nil
	}
	return &dto.TonerResponse{
		ID:           t.ID,
		Name:         t.Name,
		Brand:        t.Brand,
		Model:        t.Model,
		Color:        t.Color,
		SKU:          t.SKU,
		MinStock:     t.MinStock,
		CurrentStock: t.CurrentStock,
		LowStock:     t.LowStock(),
		IsActive:     t.IsActive,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// totalPages calcula páginas totales, mínimo 1.
func totalPages(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pages
}
