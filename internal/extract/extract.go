// Package extract reads the on-target extraction directory: the
// identification summary, the disassembled ACPI tables, and the
// runtime-captured sidecar files.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"acpidts/internal/common"
)

const (
	SummaryFilename    = "00-summary.txt"
	I2CScanFilename    = "06-i2c.txt"
	RegulatorsFilename = "12-regulators.txt"

	ACPISubdir       = "acpi"
	PrimaryTableName = "DSDT.dsl"
	SupplTableGlob   = "SSDT*.dsl"
)

// Extraction is the readable view of one extraction directory.
// Missing optional inputs leave the corresponding fields empty and add
// a warning; missing mandatory inputs fail the load.
type Extraction struct {
	Dir          string
	Summary      Summary
	Board        BoardIdentity
	PrimaryTable string   // path to the disassembled DSDT
	SupplTables  []string // paths to disassembled SSDTs, sorted
	I2C          []I2CDetection
	Regulators   []Regulator
	Warnings     []string
}

// Load opens an extraction directory and reads everything in it.
func Load(dir string) (*Extraction, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, common.NewErrorMsg(common.ErrSevError, common.ErrNoExtractDir, dir)
	}

	ex := &Extraction{Dir: dir}

	summaryPath := filepath.Join(dir, SummaryFilename)
	f, err := os.Open(summaryPath)
	if err != nil {
		return nil, common.NewErrorMsg(common.ErrSevError, common.ErrNoSummary, summaryPath)
	}
	ex.Summary = ParseSummary(f)
	f.Close()
	ex.Board = DetectBoard(ex.Summary.ProductName)

	if !ex.Summary.ACPIBoot {
		ex.Warnings = append(ex.Warnings,
			"summary lacks the ACPI boot marker; tables may describe a device-tree boot")
	}

	ex.PrimaryTable = filepath.Join(dir, ACPISubdir, PrimaryTableName)
	if _, err := os.Stat(ex.PrimaryTable); err != nil {
		return nil, common.NewErrorMsg(common.ErrSevError, common.ErrNoPrimaryTable, ex.PrimaryTable)
	}

	suppl, err := filepath.Glob(filepath.Join(dir, ACPISubdir, SupplTableGlob))
	if err == nil && len(suppl) > 0 {
		sort.Strings(suppl)
		ex.SupplTables = suppl
	} else {
		ex.Warnings = append(ex.Warnings, "no supplementary tables found")
	}

	if f, err := os.Open(filepath.Join(dir, I2CScanFilename)); err == nil {
		ex.I2C = ParseI2CScan(f)
		f.Close()
	} else {
		ex.Warnings = append(ex.Warnings,
			fmt.Sprintf("%s not found; i2c child placeholders will be omitted", I2CScanFilename))
	}

	if f, err := os.Open(filepath.Join(dir, RegulatorsFilename)); err == nil {
		ex.Regulators = ParseRegulators(f)
		f.Close()
	} else {
		ex.Warnings = append(ex.Warnings,
			fmt.Sprintf("%s not found; runtime regulator fallback unavailable", RegulatorsFilename))
	}

	return ex, nil
}
