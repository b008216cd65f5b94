package purchasing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-obra-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-obra-api/internal/application/purchasing"
	"github.com/jhoicas/Almacen-obra-api/internal/domain"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error             { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }
func (r *fakeProductRepo) Update(p *entity.Product) error             { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Deactivate(id string) error { return nil }

type fakeStockRepo struct {
	stocks map[string]*entity.Stock
}

func (r *fakeStockRepo) Get(productID string) (*entity.Stock, error) {
	if s, ok := r.stocks[productID]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID, Quantity: decimal.Zero}, nil
}
func (r *fakeStockRepo) GetForUpdate(productID string) (*entity.Stock, error) {
	return r.Get(productID)
}
func (r *fakeStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	r.stocks[stock.ProductID] = &cp
	return nil
}
func (r *fakeStockRepo) ListLowStock() ([]*repository.ProductStock, error) { return nil, nil }

type fakeMovementRepo struct {
	movements  []*entity.StockMovement
	failCreate error
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.movements = append(r.movements, m)
	return nil
}
func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) { return nil, nil }
func (r *fakeMovementRepo) ListByProduct(productID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return nil, nil
}

type fakeRequestRepo struct {
	requests map[string]*entity.PurchaseRequest
}

func (r *fakeRequestRepo) Create(req *entity.PurchaseRequest) error { r.requests[req.ID] = req; return nil }
func (r *fakeRequestRepo) GetByID(id string) (*entity.PurchaseRequest, error) {
	return r.requests[id], nil
}
func (r *fakeRequestRepo) GetForUpdate(id string) (*entity.PurchaseRequest, error) {
	return r.requests[id], nil
}
func (r *fakeRequestRepo) UpdateStatus(id, status string, deliveredAt *time.Time) error {
	if req, ok := r.requests[id]; ok {
		req.Status = status
		req.DeliveredAt = deliveredAt
	}
	return nil
}
func (r *fakeRequestRepo) ListByStatus(status string, limit, offset int) ([]*entity.PurchaseRequest, error) {
	var out []*entity.PurchaseRequest
	for _, req := range r.requests {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	mu          sync.Mutex
	requestRepo *fakeRequestRepo
	movRepo     *fakeMovementRepo
	stockRepo   *fakeStockRepo
}

// RunPurchase restaura el estado completo cuando el callback falla, igual que
// el rollback de la transacción real.
func (tr *fakeTxRunner) RunPurchase(ctx context.Context, fn func(
	requestRepo repository.PurchaseRequestRepository,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	reqSnap := make(map[string]*entity.PurchaseRequest, len(tr.requestRepo.requests))
	for id, req := range tr.requestRepo.requests {
		cp := *req
		reqSnap[id] = &cp
	}
	stockSnap := make(map[string]*entity.Stock, len(tr.stockRepo.stocks))
	for id, s := range tr.stockRepo.stocks {
		cp := *s
		stockSnap[id] = &cp
	}
	movCount := len(tr.movRepo.movements)

	err := fn(tr.requestRepo, tr.movRepo, tr.stockRepo)
	if err != nil {
		tr.requestRepo.requests = reqSnap
		tr.stockRepo.stocks = stockSnap
		tr.movRepo.movements = tr.movRepo.movements[:movCount]
	}
	return err
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return fn(tr.movRepo, tr.stockRepo)
}

type purchasingFixture struct {
	uc        *purchasing.UseCase
	products  *fakeProductRepo
	stocks    *fakeStockRepo
	movements *fakeMovementRepo
	requests  *fakeRequestRepo
}

func newPurchasingFixture(t *testing.T) *purchasingFixture {
	t.Helper()
	products := &fakeProductRepo{products: map[string]*entity.Product{}}
	stocks := &fakeStockRepo{stocks: map[string]*entity.Stock{}}
	movements := &fakeMovementRepo{}
	requests := &fakeRequestRepo{requests: map[string]*entity.PurchaseRequest{}}
	runner := &fakeTxRunner{requestRepo: requests, movRepo: movements, stockRepo: stocks}
	ledgerUC := ledger.NewUseCase(runner, products, stocks, movements)
	return &purchasingFixture{
		uc:        purchasing.NewUseCase(runner, ledgerUC, products, requests),
		products:  products,
		stocks:    stocks,
		movements: movements,
		requests:  requests,
	}
}

func (f *purchasingFixture) addProduct(id string) {
	f.products.products[id] = &entity.Product{
		ID: id, Name: "Varilla 1/2\"", UnitMeasure: "und", Active: true,
	}
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_QuedaPendiente(t *testing.T) {
	f := newPurchasingFixture(t)
	f.addProduct("varilla")

	req, err := f.uc.Create(context.Background(), purchasing.CreateInput{
		ProductID: "varilla", Quantity: qty("200"), Requester: "jefe-obra",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPending, req.Status)
	assert.Equal(t, "und", req.UnitMeasure, "sin unidad explícita hereda la del producto")
	assert.Nil(t, req.DeliveredAt)
}

func TestCreate_UnidadExplicitaPrevalece(t *testing.T) {
	f := newPurchasingFixture(t)
	f.addProduct("varilla")

	req, err := f.uc.Create(context.Background(), purchasing.CreateInput{
		ProductID: "varilla", Quantity: qty("1"), UnitMeasure: "tonelada", Requester: "jefe-obra",
	})
	require.NoError(t, err)
	assert.Equal(t, "tonelada", req.UnitMeasure)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	f := newPurchasingFixture(t)
	f.addProduct("varilla")

	_, err := f.uc.Create(context.Background(), purchasing.CreateInput{
		ProductID: "varilla", Quantity: qty("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin solicitante")

	_, err = f.uc.Create(context.Background(), purchasing.CreateInput{
		ProductID: "varilla", Quantity: qty("0"), Requester: "jefe-obra",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.Create(context.Background(), purchasing.CreateInput{
		ProductID: "no-existe", Quantity: qty("10"), Requester: "jefe-obra",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus — pipeline
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_PipelineCompletoEmiteUnIN(t *testing.T) {
	f := newPurchasingFixture(t)
	f.addProduct("varilla")

	req, err := f.uc.Create(context.Background(), purchasing.CreateInput{
		ProductID: "varilla", Quantity: qty("200"), Requester: "jefe-obra",
	})
	require.NoError(t, err)

	req, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusApproved, "gerente")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusApproved, req.Status)
	assert.Empty(t, f.movements.movements, "aprobar no toca el stock")

	req, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusOrdered, "gerente")
	require.NoError(t, err)
	assert.Empty(t, f.movements.movements, "ordenar no toca el stock")

	req, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusDelivered, "bodeguero-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusDelivered, req.Status)
	assert.NotNil(t, req.DeliveredAt)

	// Exactamente un IN por la cantidad solicitada, atribuido a quien recibió.
	require.Len(t, f.movements.movements, 1)
	mov := f.movements.movements[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, "varilla", mov.ProductID)
	assert.True(t, mov.Quantity.Equal(qty("200")))
	assert.Equal(t, "bodeguero-1", mov.CreatedBy)

	stock, err := f.stocks.Get("varilla")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(qty("200")))
}

func TestUpdateStatus_EntregaDirectaDesdeAprobado(t *testing.T) {
	f := newPurchasingFixture(t)
	f.addProduct("varilla")

	req, err := f.uc.Create(context.Background(), purchasing.CreateInput{
		ProductID: "varilla", Quantity: qty("50"), Requester: "jefe-obra",
	})
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusApproved, "gerente")
	require.NoError(t, err)

	// APPROVED puede saltarse ORDERED y entregar directo.
	_, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusDelivered, "bodeguero-1")
	require.NoError(t, err)
	assert.Len(t, f.movements.movements, 1)
}

func TestUpdateStatus_NoReentrega(t *testing.T) {
	f := newPurchasingFixture(t)
	f.addProduct("varilla")

	req, err := f.uc.Create(context.Background(), purchasing.CreateInput{
		ProductID: "varilla", Quantity: qty("50"), Requester: "jefe-obra",
	})
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusApproved, "gerente")
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusDelivered, "bodeguero-1")
	require.NoError(t, err)

	// Reintentar la entrega no duplica el IN.
	_, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusDelivered, "bodeguero-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Len(t, f.movements.movements, 1)

	stock, _ := f.stocks.Get("varilla")
	assert.True(t, stock.Quantity.Equal(qty("50")))
}

func TestUpdateStatus_EntregaSeRevierteSiFallaElIN(t *testing.T) {
	f := newPurchasingFixture(t)
	f.addProduct("varilla")

	req, err := f.uc.Create(context.Background(), purchasing.CreateInput{
		ProductID: "varilla", Quantity: qty("80"), Requester: "jefe-obra",
	})
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusApproved, "gerente")
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusOrdered, "gerente")
	require.NoError(t, err)

	f.movements.failCreate = errors.New("conexión perdida")
	_, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusDelivered, "bodeguero-1")
	require.Error(t, err)

	// Si el IN no se puede asentar, la entrega entera se revierte: la
	// solicitud queda en ORDERED y ni el libro ni el saldo cambian.
	stored := f.requests.requests[req.ID]
	require.NotNil(t, stored)
	assert.Equal(t, entity.PurchaseStatusOrdered, stored.Status)
	assert.Nil(t, stored.DeliveredAt)
	assert.Empty(t, f.movements.movements)
	stock, _ := f.stocks.Get("varilla")
	assert.True(t, stock.Quantity.IsZero())

	// Reintento tras recuperarse: entrega normal, exactamente un IN.
	f.movements.failCreate = nil
	_, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusDelivered, "bodeguero-1")
	require.NoError(t, err)
	require.Len(t, f.movements.movements, 1)
	stock, _ = f.stocks.Get("varilla")
	assert.True(t, stock.Quantity.Equal(qty("80")))
}

func TestUpdateStatus_PendienteNoEntregaDirecto(t *testing.T) {
	f := newPurchasingFixture(t)
	f.addProduct("varilla")

	req, err := f.uc.Create(context.Background(), purchasing.CreateInput{
		ProductID: "varilla", Quantity: qty("50"), Requester: "jefe-obra",
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusDelivered, "bodeguero-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, f.movements.movements)
}

func TestUpdateStatus_RechazadaEsTerminal(t *testing.T) {
	f := newPurchasingFixture(t)
	f.addProduct("varilla")

	req, err := f.uc.Create(context.Background(), purchasing.CreateInput{
		ProductID: "varilla", Quantity: qty("50"), Requester: "jefe-obra",
	})
	require.NoError(t, err)
	req, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusRejected, "gerente")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusRejected, req.Status)

	_, err = f.uc.UpdateStatus(context.Background(), req.ID, entity.PurchaseStatusApproved, "gerente")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, f.movements.movements)
}

func TestUpdateStatus_SolicitudInexistente(t *testing.T) {
	f := newPurchasingFixture(t)
	_, err := f.uc.UpdateStatus(context.Background(), "no-existe", entity.PurchaseStatusApproved, "gerente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestListByStatus_FiltraPorEstado(t *testing.T) {
	f := newPurchasingFixture(t)
	f.addProduct("varilla")

	r1, err := f.uc.Create(context.Background(), purchasing.CreateInput{
		ProductID: "varilla", Quantity: qty("10"), Requester: "jefe-obra",
	})
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), purchasing.CreateInput{
		ProductID: "varilla", Quantity: qty("20"), Requester: "jefe-obra",
	})
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(context.Background(), r1.ID, entity.PurchaseStatusApproved, "gerente")
	require.NoError(t, err)

	pending, err := f.uc.ListByStatus(context.Background(), entity.PurchaseStatusPending, 0, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := f.uc.ListByStatus(context.Background(), "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
