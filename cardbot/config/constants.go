package config

import "time"

// UI and display
const (
	InventoryPageSize = 10

	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	RarityCommonColor    = 0x95A5A6
	RarityUncommonColor  = 0x2ECC71
	RarityRareColor      = 0x3498DB
	RarityLegendaryColor = 0x9B59B6
	RarityMythicColor    = 0xF1C40F

	FoilFooter = "✨ Foil"
)

// Economy
const (
	PackCooldown = 24 * time.Hour
	TradeTimeout = 5 * time.Minute
)

// Database and performance
const (
	DefaultQueryTimeout     = 30 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	ImageFetchTimeout       = 15 * time.Second

	CatalogCacheSize = 64
	MaxImageBytes    = 8 << 20
)
