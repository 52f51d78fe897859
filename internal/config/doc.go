// Package config loads the explicit configuration handed to the pipeline
// entry point.
//
// # Configuration Sources
//
// Values are layered, later sources overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. invetl.yaml in the working directory (or configs/invetl.yaml)
//  3. A .env file in the working directory (never overrides the real environment)
//  4. Environment variables prefixed INVETL_
//
// # Environment Variables
//
//	INVETL_INPUT_DIR=/srv/etl
//	INVETL_INPUT_INVENTORY_FILE=inventory.csv
//	INVETL_OUTPUT_DIR=/srv/etl/out
//	INVETL_OUTPUT_WORKBOOK_FILE=report.xlsx
//	INVETL_LOGGING_LEVEL=debug
//	INVETL_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/invetl.prom
//
// Nothing in this package keeps global state; Load returns a fresh *Config
// each time and callers pass it down explicitly.
package config
