package config

import "invetl/pkg/contracts"

// Application constants
const (
	AppName    = "invetl"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable read by Load
	EnvPrefix = "INVETL"

	// DotEnvFile is loaded from the working directory when present
	DotEnvFile = ".env"
)

// Default input and output file names. The working directory at
// invocation time holds both inputs and outputs unless overridden.
const (
	DefaultInventoryFile       = "inventory.csv"
	DefaultSalesFile           = "sales.csv"
	DefaultMergedFile          = "clean_sales_inventory.csv"
	DefaultSalesByProductFile  = "agg_sales_by_product.csv"
	DefaultInventoryStatusFile = "inventory_status.csv"
	DefaultLogFile             = "logs/invetl.log"
)

// configFileNames are probed, in order, relative to the working directory
var configFileNames = []string{
	"invetl.yaml",
	"invetl.yml",
	"configs/invetl.yaml",
}
