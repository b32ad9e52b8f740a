// Package config provides centralized configuration management for jobpulse.
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A YAML file: config.yaml or configs/config.yaml
//	3. Default values from struct tags (lowest priority)
//
// Environment variables are namespaced with JOBPULSE and follow the struct
// nesting:
//
//	JOBPULSE_SERVER_PORT=5000
//	JOBPULSE_DATASET_PATH=/srv/data/employment_dataset.csv
//	JOBPULSE_DATASET_PRELOAD=true
//	JOBPULSE_ANALYTICS_RANK_CONVENTION=nearest
//	JOBPULSE_LOGGING_LEVEL=debug
//
// The equivalent YAML:
//
//	server:
//	  port: 5000
//	dataset:
//	  path: /srv/data/employment_dataset.csv
//	  fallback_paths: [./attached_assets/employment_dataset.csv]
//	  preload: true
//	analytics:
//	  rank_convention: nearest
//	  kde_bandwidth: 10000
//
// A file value of false or zero cannot override a non-zero default; use the
// environment for that.
package config
