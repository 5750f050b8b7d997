// Package analytics contiene el caso de uso del dashboard: contadores
// simples y listas cortas para la pantalla inicial.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/toner-control-api/internal/application/dto"
	"github.com/jhoicas/toner-control-api/internal/application/usecase"
	"github.com/jhoicas/toner-control-api/internal/domain/entity"
	"github.com/jhoicas/toner-control-api/internal/domain/repository"
	"github.com/jhoicas/toner-control-api/pkg/metrics"
)

const (
	lowStockListLimit    = 20 // tóneres bajo mínimo en el widget
	recentMovementsLimit = 20 // timeline de movimientos recientes
)

// DashboardUseCase genera el resumen para el dashboard: tóneres activos,
// bajo stock, movimientos de las últimas 24h, listas cortas.
type DashboardUseCase struct {
	tonerRepo repository.TonerRepository
	movRepo   repository.StockMovementRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(tonerRepo repository.TonerRepository, movRepo repository.StockMovementRepository) *DashboardUseCase {
	return &DashboardUseCase{tonerRepo: tonerRepo, movRepo: movRepo}
}

// GetSummary arma el DashboardSummary. Las consultas independientes corren
// en paralelo; todas son read-only.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummary, error) {
	activeFilter := repository.TonerFilter{OnlyActive: true}
	lowFilter := repository.TonerFilter{OnlyActive: true, LowStock: true}

	type countResult struct {
		n   int
		err error
	}
	type tonersResult struct {
		items []*entity.Toner
		err   error
	}
	type movsResult struct {
		items []*entity.StockMovementDetail
		err   error
	}

	activeCh := make(chan countResult, 1)
	lowCountCh := make(chan countResult, 1)
	last24Ch := make(chan countResult, 1)
	lowListCh := make(chan tonersResult, 1)
	recentCh := make(chan movsResult, 1)

	go func() {
		n, err := uc.tonerRepo.Count(ctx, activeFilter)
		activeCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.tonerRepo.Count(ctx, lowFilter)
		lowCountCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.movRepo.CountSince(ctx, time.Now().Add(-24*time.Hour))
		last24Ch <- countResult{n, err}
	}()
	go func() {
		items, err := uc.tonerRepo.List(ctx, lowFilter, lowStockListLimit, 0)
		lowListCh <- tonersResult{items, err}
	}()
	go func() {
		items, err := uc.movRepo.List(ctx, repository.MovementFilter{}, recentMovementsLimit, 0)
		recentCh <- movsResult{items, err}
	}()

	active := <-activeCh
	lowCount := <-lowCountCh
	last24 := <-last24Ch
	lowList := <-lowListCh
	recent := <-recentCh

	if active.err != nil {
		return nil, fmt.Errorf("dashboard: tóneres activos: %w", active.err)
	}
	if lowCount.err != nil {
		return nil, fmt.Errorf("dashboard: bajo stock: %w", lowCount.err)
	}
	if last24.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos 24h: %w", last24.err)
	}
	if lowList.err != nil {
		return nil, fmt.Errorf("dashboard: lista bajo stock: %w", lowList.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", recent.err)
	}

	metrics.LowStockToners.Set(float64(lowCount.n))

	out := &dto.DashboardSummary{
		ActiveToners:    active.n,
		LowStockCount:   lowCount.n,
		MovementsLast24: last24.n,
		LowStockList:    make([]dto.TonerResponse, 0, len(lowList.items)),
		RecentMovements: make([]dto.MovementResponse, 0, len(recent.items)),
	}
	for _, t := range lowList.items {
		out.LowStockList = append(out.LowStockList, *usecase.ToTonerResponse(t))
	}
	for _, m := range recent.items {
		out.RecentMovements = append(out.RecentMovements, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(d *entity.StockMovementDetail) dto.MovementResponse {
	return dto.MovementResponse{
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
	}
}
