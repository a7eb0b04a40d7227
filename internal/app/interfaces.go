package app

import (
	"github.com/minitill/minitill/config"
	"github.com/minitill/minitill/internal/cart"
	"github.com/minitill/minitill/internal/store"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider provides catalog store access
type CatalogProvider interface {
	Catalog() store.CatalogRepository
}

// LedgerProvider provides sales ledger access
type LedgerProvider interface {
	Ledger() store.LedgerRepository
}

// CartProvider provides session cart access
type CartProvider interface {
	Carts() *cart.Registry
}

// OprLogProvider provides operator audit log access
type OprLogProvider interface {
	OprLog() *store.OprLogWriter
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	ConfigProvider
	CatalogProvider
	LedgerProvider
	CartProvider
	OprLogProvider
}
