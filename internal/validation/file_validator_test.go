package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "invetl/internal/errors"
)

func TestFileValidator_ValidateSource(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		errType   apperrors.ErrorType
		contains  string
	}{
		{
			name: "csv file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "sales.csv")
				require.NoError(t, os.WriteFile(path, []byte("product_id\n"), 0644))
				return path
			},
		},
		{
			name: "xlsx file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "inventory.xlsx")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				return path
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.csv")
			},
			errType:  apperrors.ErrTypeStorage,
			contains: "source file not found",
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			errType:  apperrors.ErrTypeStorage,
			contains: "is a directory",
		},
		{
			name: "excel lock file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "~$inventory.xlsx")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				return path
			},
			errType:  apperrors.ErrTypeValidation,
			contains: "temporary Excel file",
		},
		{
			name: "legacy workbook",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "inventory.xls")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				return path
			},
			errType:  apperrors.ErrTypeValidation,
			contains: ".xls",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFileValidator(nil)
			err := v.ValidateSource(tt.setupFunc(t))

			if tt.errType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errType, apperrors.TypeOf(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")
		require.NoError(t, v.ValidateOutputDirectory(dir))
		assert.DirExists(t, dir)
		assert.NoFileExists(t, filepath.Join(dir, writeProbe))
	})

	t.Run("parent is a file", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		err := v.ValidateOutputDirectory(filepath.Join(blocker, "out"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
	})
}
