package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-obra-api/internal/application/ledger"
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

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakeProductRepo) Deactivate(id string) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

type fakeStockRepo struct {
	products *fakeProductRepo
	stocks   map[string]*entity.Stock
}

func (r *fakeStockRepo) Get(productID string) (*entity.Stock, error) {
	if s, ok := r.stocks[productID]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID, Quantity: decimal.Zero}, nil
}

// GetForUpdate devuelve una copia: una transacción fallida no debe dejar
// rastro en el estado guardado, igual que con rollback real.
func (r *fakeStockRepo) GetForUpdate(productID string) (*entity.Stock, error) {
	return r.Get(productID)
}

func (r *fakeStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	r.stocks[stock.ProductID] = &cp
	return nil
}

func (r *fakeStockRepo) ListLowStock() ([]*repository.ProductStock, error) {
	var out []*repository.ProductStock
	for _, p := range r.products.products {
		if !p.Active {
			continue
		}
		s, _ := r.Get(p.ID)
		if s.Quantity.LessThanOrEqual(p.MinThreshold) {
			out = append(out, &repository.ProductStock{Product: p, Stock: s})
		}
	}
	return out, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}
func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}
func (r *fakeMovementRepo) ListByProduct(productID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeTxRunner serializa las "transacciones" con un mutex, igual que el
// bloqueo de fila serializa los read-check-write en PostgreSQL.
type fakeTxRunner struct {
	mu        sync.Mutex
	movRepo   *fakeMovementRepo
	stockRepo *fakeStockRepo
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return fn(tr.movRepo, tr.stockRepo)
}

type ledgerFixture struct {
	uc        *ledger.UseCase
	products  *fakeProductRepo
	stocks    *fakeStockRepo
	movements *fakeMovementRepo
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	products := &fakeProductRepo{products: map[string]*entity.Product{}}
	stocks := &fakeStockRepo{products: products, stocks: map[string]*entity.Stock{}}
	movements := &fakeMovementRepo{}
	runner := &fakeTxRunner{movRepo: movements, stockRepo: stocks}
	return &ledgerFixture{
		uc:        ledger.NewUseCase(runner, products, stocks, movements),
		products:  products,
		stocks:    stocks,
		movements: movements,
	}
}

func (f *ledgerFixture) addProduct(id string, threshold string) {
	f.products.products[id] = &entity.Product{
		ID:           id,
		Name:         "Cemento gris 50kg",
		Category:     "construcción",
		UnitMeasure:  "bolsa",
		MinThreshold: decimal.RequireFromString(threshold),
		Active:       true,
		CreatedAt:    time.Now(),
	}
}

// ledgerSum suma direction*quantity de todos los movimientos de un producto.
func (f *ledgerFixture) ledgerSum(productID string) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range f.movements.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.SignedQuantity())
		}
	}
	return sum
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaYSalidaActualizanSaldo(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("cemento", "100")

	mov, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "cemento", Type: entity.MovementTypeIN, Quantity: qty("500"), Actor: "bodeguero-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, mov.Direction)
	assert.Equal(t, "bodeguero-1", mov.CreatedBy)

	_, err = f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "cemento", Type: entity.MovementTypeOUT, Quantity: qty("300"),
	})
	require.NoError(t, err)

	stock, err := f.uc.GetCurrentStock(context.Background(), "cemento")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(qty("200")), "saldo esperado 200, fue %s", stock.Quantity)

	// Invariante: saldo == suma de movimientos con signo.
	assert.True(t, f.ledgerSum("cemento").Equal(stock.Quantity))
	assert.Len(t, f.movements.movements, 2)
}

func TestRegisterMovement_DireccionPorTipo(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("cable", "10")

	casos := []struct {
		tipo      string
		direction int
	}{
		{entity.MovementTypeIN, 1},
		{entity.MovementTypeRETURN, 1},
		{entity.MovementTypeOUT, -1},
		{entity.MovementTypeLOSS, -1},
	}
	// Primero una entrada grande para que las salidas no agoten el saldo.
	_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "cable", Type: entity.MovementTypeIN, Quantity: qty("1000"),
	})
	require.NoError(t, err)

	for _, c := range casos {
		mov, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
			ProductID: "cable", Type: c.tipo, Quantity: qty("5"),
		})
		require.NoError(t, err, "tipo %s", c.tipo)
		assert.Equal(t, c.direction, mov.Direction, "tipo %s", c.tipo)
		assert.True(t, mov.Quantity.Equal(qty("5")), "la cantidad se guarda siempre positiva")
	}
}

func TestRegisterMovement_SalidaMayorAlSaldoFalla(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("cemento", "100")

	_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "cemento", Type: entity.MovementTypeIN, Quantity: qty("100"),
	})
	require.NoError(t, err)

	_, err = f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "cemento", Type: entity.MovementTypeOUT, Quantity: qty("300"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El rechazo no deja rastro: ni asiento ni cambio de saldo.
	stock, err := f.uc.GetCurrentStock(context.Background(), "cemento")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(qty("100")))
	assert.Len(t, f.movements.movements, 1)
}

// Vaciar el saldo exacto es válido; el rechazo es solo para saldo negativo.
func TestRegisterMovement_SalidaExactaDejaSaldoCero(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("cemento", "0")

	_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "cemento", Type: entity.MovementTypeIN, Quantity: qty("50"),
	})
	require.NoError(t, err)
	_, err = f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "cemento", Type: entity.MovementTypeOUT, Quantity: qty("50"),
	})
	require.NoError(t, err)

	stock, err := f.uc.GetCurrentStock(context.Background(), "cemento")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero())
}

func TestRegisterMovement_CantidadInvalida(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("cemento", "100")

	for _, q := range []string{"0", "-5"} {
		_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
			ProductID: "cemento", Type: entity.MovementTypeIN, Quantity: qty(q),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %s", q)
	}
	assert.Empty(t, f.movements.movements)
}

func TestRegisterMovement_TipoInvalido(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("cemento", "100")

	// Los ajustes no entran por aquí; tienen su propia operación.
	for _, tipo := range []string{"", "TRANSFER", entity.MovementTypeADJUSTMENT} {
		_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
			ProductID: "cemento", Type: tipo, Quantity: qty("10"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo %q", tipo)
	}
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "no-existe", Type: entity.MovementTypeIN, Quantity: qty("10"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos salidas concurrentes de 300 contra un saldo de 450: exactamente una
// pasa. La verificación ocurre contra el saldo bloqueado, nunca contra una
// lectura vieja.
func TestRegisterMovement_SalidasConcurrentesSoloUnaPasa(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("cemento", "100")

	_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "cemento", Type: entity.MovementTypeIN, Quantity: qty("450"),
	})
	require.NoError(t, err)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
				ProductID: "cemento", Type: entity.MovementTypeOUT, Quantity: qty("300"),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var oks, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			oks++
		default:
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			insufficient++
		}
	}
	assert.Equal(t, 1, oks, "exactamente una salida debe pasar")
	assert.Equal(t, 1, insufficient, "la otra debe fallar por saldo insuficiente")

	stock, err := f.uc.GetCurrentStock(context.Background(), "cemento")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(qty("150")), "saldo esperado 150, fue %s", stock.Quantity)
	assert.True(t, f.ledgerSum("cemento").Equal(stock.Quantity))
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterAdjustment
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterAdjustment_DeltaNegativo(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("tornillos", "50")

	_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "tornillos", Type: entity.MovementTypeIN, Quantity: qty("120"),
	})
	require.NoError(t, err)

	// El conteo físico encontró 100: el asiento es el delta, no el conteo.
	mov, err := f.uc.RegisterAdjustment(context.Background(), "tornillos", qty("100"), "conteo mensual", "almacenista")
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, mov.Type)
	assert.Equal(t, -1, mov.Direction)
	assert.True(t, mov.Quantity.Equal(qty("20")))

	stock, err := f.uc.GetCurrentStock(context.Background(), "tornillos")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(qty("100")))
	assert.True(t, f.ledgerSum("tornillos").Equal(stock.Quantity),
		"el ajuste preserva saldo == suma de movimientos con signo")
}

func TestRegisterAdjustment_DeltaPositivo(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("tornillos", "50")

	_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "tornillos", Type: entity.MovementTypeIN, Quantity: qty("80"),
	})
	require.NoError(t, err)

	mov, err := f.uc.RegisterAdjustment(context.Background(), "tornillos", qty("95"), "", "almacenista")
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, 1, mov.Direction)
	assert.True(t, mov.Quantity.Equal(qty("15")))

	stock, _ := f.uc.GetCurrentStock(context.Background(), "tornillos")
	assert.True(t, stock.Quantity.Equal(qty("95")))
}

func TestRegisterAdjustment_SinDiferenciaNoGeneraAsiento(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("tornillos", "50")

	_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "tornillos", Type: entity.MovementTypeIN, Quantity: qty("80"),
	})
	require.NoError(t, err)

	mov, err := f.uc.RegisterAdjustment(context.Background(), "tornillos", qty("80"), "", "almacenista")
	require.NoError(t, err)
	assert.Nil(t, mov, "conteo igual al saldo no genera asiento")
	assert.Len(t, f.movements.movements, 1)
}

func TestRegisterAdjustment_ConteoNegativoFalla(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("tornillos", "50")

	_, err := f.uc.RegisterAdjustment(context.Background(), "tornillos", qty("-10"), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestRegisterAdjustment_ProductoInexistente(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.uc.RegisterAdjustment(context.Background(), "no-existe", qty("10"), "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas derivadas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetCurrentStock_SinMovimientosEsCero(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("cemento", "100")

	stock, err := f.uc.GetCurrentStock(context.Background(), "cemento")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero())
}

func TestListLowStock_EntraYSaleDelUmbral(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("cemento", "500")

	// Saldo 450 con umbral 500: aparece en la lista.
	_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "cemento", Type: entity.MovementTypeIN, Quantity: qty("450"),
	})
	require.NoError(t, err)

	items, err := f.uc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "cemento", items[0].Product.ID)
	assert.True(t, items[0].Stock.Quantity.Equal(qty("450")))

	// Tras una entrada de 100 (saldo 550) deja de aparecer.
	_, err = f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "cemento", Type: entity.MovementTypeIN, Quantity: qty("100"),
	})
	require.NoError(t, err)

	items, err = f.uc.ListLowStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

// Saldo exactamente en el umbral cuenta como stock bajo.
func TestListLowStock_SaldoIgualAlUmbral(t *testing.T) {
	f := newLedgerFixture(t)
	f.addProduct("cemento", "500")

	_, err := f.uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "cemento", Type: entity.MovementTypeIN, Quantity: qty("500"),
	})
	require.NoError(t, err)

	items, err := f.uc.ListLowStock(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListMovements_ProductoInexistente(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.uc.ListMovements(context.Background(), "no-existe", repository.MovementFilter{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
