package stock_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/toner-control-api/internal/application/stock"
	"github.com/jhoicas/toner-control-api/internal/domain"
	"github.com/jhoicas/toner-control-api/internal/domain/entity"
	"github.com/jhoicas/toner-control-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: emulan la transacción (snapshot + rollback) y el bloqueo
// de fila (un mutex global serializa los Run concurrentes).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	toners    map[string]*entity.Toner
	movements []*entity.StockMovementDetail
}

func newMemStore() *memStore {
	return &memStore{toners: make(map[string]*entity.Toner)}
}

func (s *memStore) addToner(t *entity.Toner) {
	cp := *t
	s.toners[t.ID] = &cp
}

type memTonerRepo struct{ s *memStore }

func (r *memTonerRepo) Create(_ context.Context, t *entity.Toner) error {
	r.s.addToner(t)
	return nil
}

func (r *memTonerRepo) GetByID(_ context.Context, id string) (*entity.Toner, error) {
	t, ok := r.s.toners[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTonerRepo) GetBySKU(_ context.Context, sku string) (*entity.Toner, error) {
	for _, t := range r.s.toners {
		if t.SKU == sku {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTonerRepo) Update(_ context.Context, t *entity.Toner) error {
	if _, ok := r.s.toners[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.addToner(t)
	return nil
}

func (r *memTonerRepo) List(_ context.Context, _ repository.TonerFilter, _, _ int) ([]*entity.Toner, error) {
	return nil, nil
}

func (r *memTonerRepo) Count(_ context.Context, _ repository.TonerFilter) (int, error) {
	return len(r.s.toners), nil
}

func (r *memTonerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Toner, error) {
	return r.GetByID(ctx, id)
}

func (r *memTonerRepo) SetStock(_ context.Context, id string, stock int) error {
	t, ok := r.s.toners[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.CurrentStock = stock
	t.UpdatedAt = time.Now()
	return nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, &entity.StockMovementDetail{StockMovement: *m})
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovementDetail, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func matches(m *entity.StockMovementDetail, f repository.MovementFilter) bool {
	if f.TonerID != "" && m.TonerID != f.TonerID {
		return false
	}
	if f.PrinterID != "" && m.PrinterID != f.PrinterID {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.NoteContains != "" && !strings.Contains(strings.ToLower(m.Note), strings.ToLower(f.NoteContains)) {
		return false
	}
	return true
}

// List devuelve más recientes primero (orden de inserción invertido).
func (r *memMovementRepo) List(_ context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovementDetail, error) {
	var all []*entity.StockMovementDetail
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if matches(r.s.movements[i], f) {
			all = append(all, r.s.movements[i])
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memMovementRepo) Count(_ context.Context, f repository.MovementFilter) (int, error) {
	n := 0
	for _, m := range r.s.movements {
		if matches(m, f) {
			n++
		}
	}
	return n, nil
}

func (r *memMovementRepo) CountSince(_ context.Context, since time.Time) (int, error) {
	n := 0
	for _, m := range r.s.movements {
		if !m.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// memTxRunner emula Begin/Commit/Rollback: toma snapshot del estado y lo
// restaura si fn devuelve error. El mutex serializa Run concurrentes igual
// que el FOR UPDATE serializa movimientos sobre la misma fila.
type memTxRunner struct{ s *memStore }

func (tr *memTxRunner) Run(_ context.Context, fn func(repository.TonerRepository, repository.StockMovementRepository) error) error {
	tr.s.mu.Lock()
	defer tr.s.mu.Unlock()

	snapToners := make(map[string]*entity.Toner, len(tr.s.toners))
	for id, t := range tr.s.toners {
		cp := *t
		snapToners[id] = &cp
	}
	snapLen := len(tr.s.movements)

	err := fn(&memTonerRepo{s: tr.s}, &memMovementRepo{s: tr.s})
	if err != nil {
		tr.s.toners = snapToners
		tr.s.movements = tr.s.movements[:snapLen]
		return err
	}
	return nil
}

func newLedger(s *memStore) *stock.LedgerUseCase {
	return stock.NewLedgerUseCase(&memTxRunner{s: s}, &memMovementRepo{s: s})
}

func seedToner(s *memStore, stockQty int) *entity.Toner {
	t := &entity.Toner{
		ID:           uuid.New().String(),
		Name:         "HP 26A",
		Brand:        "HP",
		Model:        "CF226A",
		Color:        entity.ColorBlack,
		MinStock:     2,
		CurrentStock: stockQty,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.addToner(t)
	return t
}

const actorID = "00000000-0000-0000-0000-0000000000aa"

func apply(t *testing.T, uc *stock.LedgerUseCase, in stock.MovementInput) *stock.MovementResult {
	t.Helper()
	res, err := uc.ApplyMovement(context.Background(), in)
	require.NoError(t, err)
	return res
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyMovement — semántica de los tres tipos
// ──────────────────────────────────────────────────────────────────────────────

// Una secuencia de movimientos equivale a plegar cada uno sobre el saldo
// inicial: +in, -out, =adjust.
func TestApplyMovement_SecuenciaPliegaSobreElSaldo(t *testing.T) {
	s := newMemStore()
	toner := seedToner(s, 0)
	uc := newLedger(s)

	res := apply(t, uc, stock.MovementInput{TonerID: toner.ID, Type: "in", Quantity: 10, UserID: actorID})
	assert.Equal(t, 10, res.Toner.CurrentStock)

	res = apply(t, uc, stock.MovementInput{TonerID: toner.ID, Type: "out", Quantity: 3, UserID: actorID})
	assert.Equal(t, 7, res.Toner.CurrentStock)

	res = apply(t, uc, stock.MovementInput{TonerID: toner.ID, Type: "adjust", Quantity: 5, UserID: actorID})
	assert.Equal(t, 5, res.Toner.CurrentStock)

	res = apply(t, uc, stock.MovementInput{TonerID: toner.ID, Type: "out", Quantity: 5, UserID: actorID})
	assert.Equal(t, 0, res.Toner.CurrentStock, "una salida puede dejar el saldo exactamente en cero")

	// Cada movimiento aceptado quedó en el log, con la cantidad literal.
	assert.Len(t, s.movements, 4)
	assert.Equal(t, 5, s.movements[2].Quantity, "adjust guarda el saldo absoluto, no el delta")
}

func TestApplyMovement_EntradaRegistraMovimiento(t *testing.T) {
	s := newMemStore()
	toner := seedToner(s, 4)
	uc := newLedger(s)

	res := apply(t, uc, stock.MovementInput{
		TonerID: toner.ID, Type: "in", Quantity: 6,
		Note: "compra mensual", PrinterID: "", UserID: actorID,
	})

	assert.Equal(t, 10, res.Toner.CurrentStock)
	require.NotNil(t, res.Movement)
	assert.NotEmpty(t, res.Movement.ID)
	assert.Equal(t, "in", res.Movement.Type)
	assert.Equal(t, 6, res.Movement.Quantity)
	assert.Equal(t, "compra mensual", res.Movement.Note)
	assert.Equal(t, actorID, res.Movement.UserID)
}

// Ajuste a la misma cantidad dos veces: el saldo no cambia la segunda vez,
// pero ambos quedan registrados en el log.
func TestApplyMovement_AjusteIdempotenteSobreElSaldo(t *testing.T) {
	s := newMemStore()
	toner := seedToner(s, 9)
	uc := newLedger(s)

	res := apply(t, uc, stock.MovementInput{TonerID: toner.ID, Type: "adjust", Quantity: 3, UserID: actorID})
	assert.Equal(t, 3, res.Toner.CurrentStock)

	res = apply(t, uc, stock.MovementInput{TonerID: toner.ID, Type: "adjust", Quantity: 3, UserID: actorID})
	assert.Equal(t, 3, res.Toner.CurrentStock)

	assert.Len(t, s.movements, 2, "cada ajuste queda en el log aunque no cambie el saldo")
}

func TestApplyMovement_AjusteACeroEsValido(t *testing.T) {
	s := newMemStore()
	toner := seedToner(s, 7)
	uc := newLedger(s)

	res := apply(t, uc, stock.MovementInput{TonerID: toner.ID, Type: "adjust", Quantity: 0, UserID: actorID})
	assert.Equal(t, 0, res.Toner.CurrentStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyMovement — rechazos: el saldo y el log quedan intactos
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_SalidaInsuficiente_NoMutaNada(t *testing.T) {
	s := newMemStore()
	toner := seedToner(s, 3)
	uc := newLedger(s)

	_, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
		TonerID: toner.ID, Type: "out", Quantity: 4, UserID: actorID,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 3, s.toners[toner.ID].CurrentStock, "el saldo no debe cambiar")
	assert.Empty(t, s.movements, "un movimiento rechazado no deja rastro en el log")
}

func TestApplyMovement_TonerInexistente_RetornaNotFound(t *testing.T) {
	s := newMemStore()
	uc := newLedger(s)

	_, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
		TonerID: uuid.New().String(), Type: "in", Quantity: 1, UserID: actorID,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.movements)
}

func TestApplyMovement_Validaciones(t *testing.T) {
	s := newMemStore()
	toner := seedToner(s, 10)
	uc := newLedger(s)

	cases := []struct {
		name string
		in   stock.MovementInput
	}{
		{"sin toner_id", stock.MovementInput{Type: "in", Quantity: 1, UserID: actorID}},
		{"sin user_id", stock.MovementInput{TonerID: toner.ID, Type: "in", Quantity: 1}},
		{"tipo desconocido", stock.MovementInput{TonerID: toner.ID, Type: "transfer", Quantity: 1, UserID: actorID}},
		{"entrada con cantidad cero", stock.MovementInput{TonerID: toner.ID, Type: "in", Quantity: 0, UserID: actorID}},
		{"entrada negativa", stock.MovementInput{TonerID: toner.ID, Type: "in", Quantity: -2, UserID: actorID}},
		{"salida con cantidad cero", stock.MovementInput{TonerID: toner.ID, Type: "out", Quantity: 0, UserID: actorID}},
		{"salida negativa", stock.MovementInput{TonerID: toner.ID, Type: "out", Quantity: -1, UserID: actorID}},
		{"ajuste negativo", stock.MovementInput{TonerID: toner.ID, Type: "adjust", Quantity: -5, UserID: actorID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ApplyMovement(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	assert.Equal(t, 10, s.toners[toner.ID].CurrentStock, "ningún rechazo debe tocar el saldo")
	assert.Empty(t, s.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: dos salidas simultáneas no pueden sobregirar el saldo
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_SalidasConcurrentes_SoloUnaGana(t *testing.T) {
	s := newMemStore()
	toner := seedToner(s, 5)
	uc := newLedger(s)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.ApplyMovement(context.Background(), stock.MovementInput{
				TonerID: toner.ID, Type: "out", Quantity: 4, UserID: actorID,
			})
		}(i)
	}
	wg.Wait()

	okCount, insufficientCount := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficientCount++
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una salida debe aplicarse")
	assert.Equal(t, 1, insufficientCount, "la otra debe rechazarse por stock insuficiente")
	assert.Equal(t, 1, s.toners[toner.ID].CurrentStock, "saldo final = 5 - 4")
	assert.Len(t, s.movements, 1, "solo el movimiento ganador queda en el log")
}

// ──────────────────────────────────────────────────────────────────────────────
// ListMovements — filtros y paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_FiltrosCombinados(t *testing.T) {
	s := newMemStore()
	tonerA := seedToner(s, 100)
	tonerB := seedToner(s, 100)
	uc := newLedger(s)

	printerID := uuid.New().String()
	apply(t, uc, stock.MovementInput{TonerID: tonerA.ID, Type: "in", Quantity: 5, Note: "compra enero", UserID: actorID})
	apply(t, uc, stock.MovementInput{TonerID: tonerA.ID, Type: "out", Quantity: 2, Note: "cambio piso 3", PrinterID: printerID, UserID: actorID})
	apply(t, uc, stock.MovementInput{TonerID: tonerB.ID, Type: "out", Quantity: 1, Note: "cambio piso 1", UserID: actorID})

	// Por tóner
	page, err := uc.ListMovements(context.Background(), repository.MovementFilter{TonerID: tonerA.ID}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	// Por tipo + tóner
	page, err = uc.ListMovements(context.Background(), repository.MovementFilter{TonerID: tonerA.ID, Type: "out"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	// Por impresora
	page, err = uc.ListMovements(context.Background(), repository.MovementFilter{PrinterID: printerID}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	// Por texto en la nota (sin distinguir mayúsculas)
	page, err = uc.ListMovements(context.Background(), repository.MovementFilter{NoteContains: "CAMBIO"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
}

func TestListMovements_TipoInvalidoEnFiltro(t *testing.T) {
	s := newMemStore()
	uc := newLedger(s)

	_, err := uc.ListMovements(context.Background(), repository.MovementFilter{Type: "transfer"}, 1, 20)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_PaginacionAcotada(t *testing.T) {
	s := newMemStore()
	toner := seedToner(s, 0)
	uc := newLedger(s)

	for i := 0; i < 25; i++ {
		apply(t, uc, stock.MovementInput{TonerID: toner.ID, Type: "in", Quantity: 1, UserID: actorID})
	}

	// Defaults: page 1, tamaño 20
	page, err := uc.ListMovements(context.Background(), repository.MovementFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Items, stock.DefaultPageSize)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.Pages)

	// Segunda página: el resto
	page, err = uc.ListMovements(context.Background(), repository.MovementFilter{}, 2, 20)
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)

	// limit > máximo se recorta a 100
	page, err = uc.ListMovements(context.Background(), repository.MovementFilter{}, 1, 500)
	require.NoError(t, err)
	assert.Len(t, page.Items, 25)
	assert.Equal(t, 1, page.Pages)
}

func TestListMovements_SinResultados_PagesMinimoUno(t *testing.T) {
	s := newMemStore()
	uc := newLedger(s)

	page, err := uc.ListMovements(context.Background(), repository.MovementFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 1, page.Pages, "sin resultados pages debe ser 1, no 0")
	assert.Empty(t, page.Items)
}

// El listado devuelve más recientes primero.
func TestListMovements_OrdenDescendente(t *testing.T) {
	s := newMemStore()
	toner := seedToner(s, 0)
	uc := newLedger(s)

	apply(t, uc, stock.MovementInput{TonerID: toner.ID, Type: "in", Quantity: 1, Note: "primero", UserID: actorID})
	apply(t, uc, stock.MovementInput{TonerID: toner.ID, Type: "in", Quantity: 1, Note: "segundo", UserID: actorID})

	page, err := uc.ListMovements(context.Background(), repository.MovementFilter{}, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "segundo", page.Items[0].Note)
	assert.Equal(t, "primero", page.Items[1].Note)
}
