package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "invetl/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.Input.Dir)
	assert.Equal(t, "inventory.csv", cfg.Input.InventoryFile)
	assert.Equal(t, "sales.csv", cfg.Input.SalesFile)
	assert.Equal(t, "clean_sales_inventory.csv", cfg.Output.MergedFile)
	assert.Equal(t, "agg_sales_by_product.csv", cfg.Output.SalesByProductFile)
	assert.Equal(t, "inventory_status.csv", cfg.Output.InventoryStatusFile)
	assert.Empty(t, cfg.Output.WorkbookFile)
	assert.False(t, cfg.Output.BOMPrefix)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.False(t, cfg.Telemetry.EnableTracing)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		env         map[string]string
		wantErr     bool
		validateCfg func(*testing.T, string, *Config)
	}{
		{
			name: "defaults resolve against working directory",
			validateCfg: func(t *testing.T, dir string, cfg *Config) {
				p := cfg.Paths()
				assert.Equal(t, filepath.Join(dir, "inventory.csv"), p.InventoryFile)
				assert.Equal(t, filepath.Join(dir, "sales.csv"), p.SalesFile)
				assert.Equal(t, filepath.Join(dir, "clean_sales_inventory.csv"), p.MergedFile)
				assert.Empty(t, p.WorkbookFile)
			},
		},
		{
			name: "yaml file overrides defaults",
			files: map[string]string{
				"invetl.yaml": "input:\n  inventory_file: stock.csv\noutput:\n  dir: out\n  workbook_file: report.xlsx\nlogging:\n  level: debug\n",
			},
			validateCfg: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "stock.csv", cfg.Input.InventoryFile)
				assert.Equal(t, "sales.csv", cfg.Input.SalesFile)
				assert.Equal(t, filepath.Join(dir, "out"), cfg.Output.Dir)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, filepath.Join(dir, "out", "report.xlsx"), cfg.Paths().WorkbookFile)
			},
		},
		{
			name: "config file under configs directory",
			files: map[string]string{
				"configs/invetl.yaml": "output:\n  merged_file: merged.csv\n",
			},
			validateCfg: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "merged.csv", cfg.Output.MergedFile)
			},
		},
		{
			name: "environment overrides yaml",
			files: map[string]string{
				"invetl.yaml": "logging:\n  level: debug\n",
			},
			env: map[string]string{
				"INVETL_LOGGING_LEVEL":            "error",
				"INVETL_INPUT_SALES_FILE":         "transactions.csv",
				"INVETL_OUTPUT_BOM_PREFIX":        "true",
				"INVETL_TELEMETRY_ENABLE_TRACING": "true",
			},
			validateCfg: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "error", cfg.Logging.Level)
				assert.Equal(t, "transactions.csv", cfg.Input.SalesFile)
				assert.True(t, cfg.Output.BOMPrefix)
				assert.True(t, cfg.Telemetry.EnableTracing)
			},
		},
		{
			name: "absolute output dir is kept",
			env: map[string]string{
				"INVETL_OUTPUT_DIR": filepath.Join(os.TempDir(), "invetl-out"),
			},
			validateCfg: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, filepath.Join(os.TempDir(), "invetl-out"), cfg.Output.Dir)
			},
		},
		{
			name: "invalid log level fails validation",
			env: map[string]string{
				"INVETL_LOGGING_LEVEL": "verbose",
			},
			wantErr: true,
		},
		{
			name: "workbook without xlsx extension fails validation",
			env: map[string]string{
				"INVETL_OUTPUT_WORKBOOK_FILE": "report.csv",
			},
			wantErr: true,
		},
		{
			name: "malformed yaml",
			files: map[string]string{
				"invetl.yaml": "input: [unclosed\n",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, filepath.Join(dir, name), content)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(dir)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
				return
			}
			require.NoError(t, err)
			if tt.validateCfg != nil {
				tt.validateCfg(t, dir, cfg)
			}
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	const key = "INVETL_OUTPUT_MERGED_FILE"
	require.Empty(t, os.Getenv(key))

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), key+"=from_dotenv.csv\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv.csv", cfg.Output.MergedFile)

	_, leaked := os.LookupEnv(key)
	assert.False(t, leaked, ".env values must not remain in the environment")
}

func TestLoad_DotEnvIsScopedToOneLoad(t *testing.T) {
	first := t.TempDir()
	writeFile(t, filepath.Join(first, ".env"), "INVETL_OUTPUT_MERGED_FILE=first.csv\n")
	cfg, err := Load(first)
	require.NoError(t, err)
	assert.Equal(t, "first.csv", cfg.Output.MergedFile)

	second := t.TempDir()
	cfg, err = Load(second)
	require.NoError(t, err)
	assert.Equal(t, DefaultMergedFile, cfg.Output.MergedFile)
}

func TestLoad_InvalidDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "INVETL_OUTPUT_MERGED_FILE='unterminated\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	t.Setenv("INVETL_OUTPUT_SALES_BY_PRODUCT_FILE", "from_env.csv")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "INVETL_OUTPUT_SALES_BY_PRODUCT_FILE=from_dotenv.csv\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from_env.csv", cfg.Output.SalesByProductFile)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "empty inventory file", mutate: func(c *Config) { c.Input.InventoryFile = "" }, wantErr: true},
		{name: "empty output dir", mutate: func(c *Config) { c.Output.Dir = "" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "file output without path", mutate: func(c *Config) {
			c.Logging.Output = "file"
			c.Logging.FilePath = ""
		}, wantErr: true},
		{name: "console output without path", mutate: func(c *Config) { c.Logging.FilePath = "" }},
		{name: "sample ratio above one", mutate: func(c *Config) { c.Telemetry.SampleRatio = 1.5 }, wantErr: true},
		{name: "unknown trace exporter", mutate: func(c *Config) { c.Telemetry.TraceExporter = "otlp" }, wantErr: true},
		{name: "xlsx workbook", mutate: func(c *Config) { c.Output.WorkbookFile = "report.xlsx" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPaths_AbsoluteNamesWin(t *testing.T) {
	cfg := Default()
	cfg.Input.Dir = "/data/in"
	cfg.Output.Dir = "/data/out"
	cfg.Input.SalesFile = "/elsewhere/sales.csv"

	p := cfg.Paths()
	assert.Equal(t, "/data/in/inventory.csv", p.InventoryFile)
	assert.Equal(t, "/elsewhere/sales.csv", p.SalesFile)
	assert.Equal(t, []string{
		"/data/out/clean_sales_inventory.csv",
		"/data/out/agg_sales_by_product.csv",
		"/data/out/inventory_status.csv",
	}, p.Outputs())
}
