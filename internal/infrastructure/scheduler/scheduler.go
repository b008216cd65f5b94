package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Almacen-obra-api/internal/application/checkout"
	"github.com/jhoicas/Almacen-obra-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-obra-api/internal/domain/lifecycle"
	"github.com/jhoicas/Almacen-obra-api/pkg/logger"
)

// Scheduler tareas programadas de solo lectura: reporte en log de productos
// con stock bajo y préstamos vencidos. No entrega notificaciones; eso es de
// los colaboradores externos que leen el estado publicado.
type Scheduler struct {
	cron       *cron.Cron
	ledgerUC   *ledger.UseCase
	checkoutUC *checkout.UseCase
	spec       string
	log        *logger.Logger
}

// New construye el scheduler. spec es una expresión cron estándar de 5 campos.
func New(spec string, ledgerUC *ledger.UseCase, checkoutUC *checkout.UseCase, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		ledgerUC:   ledgerUC,
		checkoutUC: checkoutUC,
		spec:       spec,
		log:        log,
	}
}

// Start registra y arranca las tareas.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.reportLowStock); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.spec, s.reportOverdueCheckouts); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("scheduler iniciado")
	return nil
}

// Stop detiene el cron y espera las tareas en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) reportLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	items, err := s.ledgerUC.ListLowStock(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("reporte de stock bajo")
		return
	}
	for _, item := range items {
		s.log.Warn().
			Str("product_id", item.Product.ID).
			Str("name", item.Product.Name).
			Str("current_stock", item.Stock.Quantity.String()).
			Str("min_threshold", item.Product.MinThreshold.String()).
			Msg("producto con stock bajo")
	}
	s.log.Info().Int("total", len(items)).Msg("reporte de stock bajo completado")
}

func (s *Scheduler) reportOverdueCheckouts() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	open, err := s.checkoutUC.ListOpen(ctx, 200, 0)
	if err != nil {
		s.log.Error().Err(err).Msg("reporte de préstamos vencidos")
		return
	}
	now := time.Now()
	overdue := 0
	for _, co := range open {
		if lifecycle.IsOverdue(co, now) {
			overdue++
			s.log.Warn().
				Str("checkout_id", co.ID).
				Str("asset_id", co.AssetID).
				Str("worker", co.WorkerName).
				Time("expected_return", *co.ExpectedReturn).
				Msg("préstamo vencido")
		}
	}
	s.log.Info().Int("abiertos", len(open)).Int("vencidos", overdue).Msg("reporte de préstamos completado")
}
