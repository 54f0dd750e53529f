package main

import (
	"context"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	appledger "github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/pricing"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/interfaces/rpc"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// stores agrupa los repositorios de acceso directo y el runner transaccional
// del backend elegido.
type stores struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	movements  repository.MovementRepository
	txCatalog  catalog.TxRunner
	txLedger   appledger.TxRunner
	txPricing  pricing.TxRunner
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := buildStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacén")
	}
	defer st.close()

	categoryUC := catalog.NewCategoryUseCase(st.categories, st.products, st.txCatalog)
	productUC := catalog.NewProductUseCase(st.categories, st.products, st.txCatalog)
	ledgerUC := appledger.NewUseCase(st.movements, st.txLedger)
	pricingUC := pricing.NewUseCase(st.txPricing)

	gateway := rpc.NewGateway(categoryUC, productUC, ledgerUC, pricingUC)
	server := rpc.NewServer(cfg.RPC, gateway, log)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(gCtx)
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("apagando servidor RPC")
		return server.Close()
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("servidor RPC")
	}
	log.Info().Msg("aplicación detenida")
}

// buildStores arma el backend de persistencia según STORE_DRIVER.
func buildStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Store.Driver == "memory" {
		store := memory.NewStore()
		return &stores{
			categories: store.Categories(),
			products:   store.Products(),
			movements:  store.Movements(),
			txCatalog:  store,
			txLedger:   store,
			txPricing:  store,
			close:      func() {},
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	txRunner := postgres.NewTxRunner(pool)
	return &stores{
		categories: postgres.NewCategoryRepository(pool),
		products:   postgres.NewProductRepository(pool),
		movements:  postgres.NewMovementRepository(pool),
		txCatalog:  txRunner,
		txLedger:   txRunner,
		txPricing:  txRunner,
		close:      pool.Close,
	}, nil
}
