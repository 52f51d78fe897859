package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "invetl/internal/errors"
)

// Config represents the complete pipeline configuration
type Config struct {
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// InputConfig locates the two tabular sources
type InputConfig struct {
	Dir           string `yaml:"dir" envconfig:"DIR" validate:"required"`
	InventoryFile string `yaml:"inventory_file" envconfig:"INVENTORY_FILE" validate:"required"`
	SalesFile     string `yaml:"sales_file" envconfig:"SALES_FILE" validate:"required"`
}

// OutputConfig locates the three reports and the optional workbook
type OutputConfig struct {
	Dir                 string `yaml:"dir" envconfig:"DIR" validate:"required"`
	MergedFile          string `yaml:"merged_file" envconfig:"MERGED_FILE" validate:"required"`
	SalesByProductFile  string `yaml:"sales_by_product_file" envconfig:"SALES_BY_PRODUCT_FILE" validate:"required"`
	InventoryStatusFile string `yaml:"inventory_status_file" envconfig:"INVENTORY_STATUS_FILE" validate:"required"`
	WorkbookFile        string `yaml:"workbook_file" envconfig:"WORKBOOK_FILE"`
	BOMPrefix           bool   `yaml:"bom_prefix" envconfig:"BOM_PREFIX"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// TelemetryConfig controls step tracing and the metrics dump
type TelemetryConfig struct {
	Environment   string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	EnableTracing bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	TraceExporter string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
	MetricsFile   string  `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Dir:           ".",
			InventoryFile: DefaultInventoryFile,
			SalesFile:     DefaultSalesFile,
		},
		Output: OutputConfig{
			Dir:                 ".",
			MergedFile:          DefaultMergedFile,
			SalesByProductFile:  DefaultSalesByProductFile,
			InventoryStatusFile: DefaultInventoryStatusFile,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			Environment:   "production",
			EnableTracing: false,
			TraceExporter: "stdout",
			SampleRatio:   1.0,
		},
	}
}

// Load builds the configuration for a run rooted at workDir. Relative
// input and output directories are resolved against workDir.
func Load(workDir string) (*Config, error) {
	cfg := Default()

	if configFile := findConfigFile(workDir); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", configFile)
		}
	}

	restore, err := overlayDotEnv(filepath.Join(workDir, DotEnvFile))
	if err != nil {
		return nil, err
	}
	err = envconfig.Process(EnvPrefix, cfg)
	restore()
	if err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	cfg.resolvePaths(workDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// overlayDotEnv exposes the keys of a .env file that the environment does
// not already define, for the duration of one envconfig pass. The returned
// func removes them again so nothing outlives the Load call.
func overlayDotEnv(path string) (func(), error) {
	noop := func() {}
	if _, err := os.Stat(path); err != nil {
		return noop, nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return noop, apperrors.NewConfigError("failed to load .env file", err).WithContext("path", path)
	}

	added := make([]string, 0, len(vars))
	restore := func() {
		for _, key := range added {
			os.Unsetenv(key)
		}
	}
	for key, value := range vars {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			restore()
			return noop, apperrors.NewConfigError("failed to apply .env file", err).WithContext("path", path)
		}
		added = append(added, key)
	}
	return restore, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file
// keep their current value
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// findConfigFile returns the first config file present under workDir
func findConfigFile(workDir string) string {
	for _, name := range configFileNames {
		location := filepath.Join(workDir, name)
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// resolvePaths anchors relative directories to workDir
func (c *Config) resolvePaths(workDir string) {
	c.Input.Dir = resolve(workDir, c.Input.Dir)
	c.Output.Dir = resolve(workDir, c.Output.Dir)
	if c.Logging.FilePath != "" {
		c.Logging.FilePath = resolve(workDir, c.Logging.FilePath)
	}
	if c.Telemetry.MetricsFile != "" {
		c.Telemetry.MetricsFile = resolve(workDir, c.Telemetry.MetricsFile)
	}
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	if c.Output.WorkbookFile != "" && filepath.Ext(c.Output.WorkbookFile) != ".xlsx" {
		return apperrors.NewConfigError(
			fmt.Sprintf("workbook file must have .xlsx extension: %s", c.Output.WorkbookFile), nil)
	}
	return nil
}
