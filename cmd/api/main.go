package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/wpuckar/hexastock-api/internal/application/ledger"
	"github.com/wpuckar/hexastock-api/internal/application/registry"
	"github.com/wpuckar/hexastock-api/internal/application/report"
	"github.com/wpuckar/hexastock-api/internal/application/transfer"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore/memory"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore/postgres"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore/sqlite"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/sheet"
	httpRouter "github.com/wpuckar/hexastock-api/internal/interfaces/http"
	"github.com/wpuckar/hexastock-api/pkg/config"
	"github.com/wpuckar/hexastock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicação")

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir armazenamento")
	}
	defer closeStore()

	equipRepo := sheet.NewEquipmentRepository(store)
	movRepo := sheet.NewMovementRepository(store)
	transferRepo := sheet.NewTransferRepository(store)
	configRepo := sheet.NewConfigRepository(store)

	registryUC := registry.New(equipRepo, movRepo, configRepo, log)
	ledgerUC := ledger.New(equipRepo, movRepo, configRepo, log)
	transferUC := transfer.New(transferRepo, configRepo, log)
	reportUC := report.New(equipRepo, movRepo, transferRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegistryUC: registryUC,
		LedgerUC:   ledgerUC,
		TransferUC: transferUC,
		ReportUC:   reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}

// openStore abre o backend do gateway conforme STORE_DRIVER e garante o
// esquema das quatro tabelas.
func openStore(ctx context.Context, cfg config.StoreConfig) (rowstore.TableStore, func(), error) {
	switch cfg.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.New(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	case "sqlite":
		db, err := sqlite.Connect(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store := sqlite.New(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil
	default: // memory, validado em config.Load
		return memory.New(), func() {}, nil
	}
}
