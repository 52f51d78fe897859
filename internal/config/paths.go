package config

import (
	"path/filepath"
)

// Paths holds the fully resolved file locations of a run
type Paths struct {
	InventoryFile       string
	SalesFile           string
	OutputDir           string
	MergedFile          string
	SalesByProductFile  string
	InventoryStatusFile string
	WorkbookFile        string
}

// Paths resolves every input and output location of the configuration
func (c *Config) Paths() Paths {
	p := Paths{
		InventoryFile:       join(c.Input.Dir, c.Input.InventoryFile),
		SalesFile:           join(c.Input.Dir, c.Input.SalesFile),
		OutputDir:           c.Output.Dir,
		MergedFile:          join(c.Output.Dir, c.Output.MergedFile),
		SalesByProductFile:  join(c.Output.Dir, c.Output.SalesByProductFile),
		InventoryStatusFile: join(c.Output.Dir, c.Output.InventoryStatusFile),
	}
	if c.Output.WorkbookFile != "" {
		p.WorkbookFile = join(c.Output.Dir, c.Output.WorkbookFile)
	}
	return p
}

// Outputs lists the three report files in the order they are written
func (p Paths) Outputs() []string {
	return []string{p.MergedFile, p.SalesByProductFile, p.InventoryStatusFile}
}

func join(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
