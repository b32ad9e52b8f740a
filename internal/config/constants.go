package config

import "time"

// Application constants
const (
	AppName = "jobpulse"

	// Dataset
	DefaultDatasetPath = "attached_assets/employment_dataset.csv"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 1000

	// Analytics
	DefaultKDEBandwidth  = 10000.0
	DefaultKDEThresholds = 100
	DefaultTopTitles     = 10

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Timeouts
	DefaultRequestTimeout = 15 * time.Second
	DefaultExportTimeout  = 2 * time.Minute

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)
