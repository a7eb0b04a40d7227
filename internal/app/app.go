package app

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/minitill/minitill/config"
	"github.com/minitill/minitill/internal/cart"
	"github.com/minitill/minitill/internal/store"
)

// Application wires the durable stores, the session cart registry and the
// runtime configuration together.
type Application struct {
	appConfig *config.AppConfig
	catalog   store.CatalogRepository
	ledger    store.LedgerRepository
	carts     *cart.Registry
	oprlog    *store.OprLogWriter
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider  = (*Application)(nil)
	_ CatalogProvider = (*Application)(nil)
	_ LedgerProvider  = (*Application)(nil)
	_ CartProvider    = (*Application)(nil)
	_ OprLogProvider  = (*Application)(nil)
	_ AppContext      = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Catalog() store.CatalogRepository {
	return a.catalog
}

func (a *Application) Ledger() store.LedgerRepository {
	return a.ledger
}

func (a *Application) Carts() *cart.Registry {
	return a.carts
}

func (a *Application) OprLog() *store.OprLogWriter {
	return a.oprlog
}

// OverrideCatalog replaces the catalog repository (used in tests).
func (a *Application) OverrideCatalog(r store.CatalogRepository) {
	a.catalog = r
}

// OverrideLedger replaces the ledger repository (used in tests).
func (a *Application) OverrideLedger(r store.LedgerRepository) {
	a.ledger = r
}

// Init builds the logger, creates the durable stores and lazily creates
// their backing files so the first run starts from empty tables.
func (a *Application) Init(cfg *config.AppConfig) error {
	initLogger(cfg.Logger)

	a.catalog = store.NewCsvCatalogRepository(cfg.Path.Product, cfg.Path.Image)
	a.ledger = store.NewCsvLedgerRepository(cfg.Path.Record)
	a.carts = cart.NewRegistry()

	oprlog, err := store.NewOprLogWriter(filepath.Join(filepath.Dir(cfg.Path.Record), "oprlog.csv"))
	if err != nil {
		return err
	}
	a.oprlog = oprlog

	if err := os.MkdirAll(cfg.Path.Image, 0o755); err != nil {
		return err
	}

	ctx := context.Background()
	if _, err := a.catalog.Load(ctx); err != nil {
		return err
	}
	if _, err := a.ledger.Load(ctx); err != nil {
		return err
	}

	zap.S().Infof("stores ready: product=%s image=%s record=%s",
		cfg.Path.Product, cfg.Path.Image, cfg.Path.Record)
	return nil
}

// Release releases application resources.
func (a *Application) Release() {
	_ = zap.L().Sync()
}

func initLogger(cfg config.LoggerConfig) {
	var zapConfig zap.Config
	if cfg.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)
}
