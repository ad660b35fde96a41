package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"acpidts/internal/common"
	"github.com/pkg/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func minimalDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, SummaryFilename),
		"Product Name: Radxa Orion O6\nBoot mode: ACPI\nCores: 12\n")
	writeFile(t, filepath.Join(dir, ACPISubdir, PrimaryTableName), "")
	return dir
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assertCode(t, err, common.ErrNoExtractDir)
}

func TestLoadMissingSummary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ACPISubdir, PrimaryTableName), "")
	_, err := Load(dir)
	assertCode(t, err, common.ErrNoSummary)
}

func TestLoadMissingPrimaryTable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, SummaryFilename), "Boot mode: ACPI\n")
	_, err := Load(dir)
	assertCode(t, err, common.ErrNoPrimaryTable)
}

func TestLoadMinimal(t *testing.T) {
	dir := minimalDir(t)
	ex, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ex.Board.Variant != "O6" {
		t.Errorf("Board.Variant = %q", ex.Board.Variant)
	}
	// All optional inputs are missing: each produces a warning.
	if len(ex.Warnings) != 3 {
		t.Errorf("Warnings = %v, want 3 entries", ex.Warnings)
	}
}

func TestLoadFull(t *testing.T) {
	dir := minimalDir(t)
	writeFile(t, filepath.Join(dir, ACPISubdir, "SSDT1.dsl"), "")
	writeFile(t, filepath.Join(dir, ACPISubdir, "SSDT2.dsl"), "")
	writeFile(t, filepath.Join(dir, I2CScanFilename),
		"--- i2c-1 ---\n00:          -- 04 -- -- -- -- -- -- -- -- -- -- --\n")
	writeFile(t, filepath.Join(dir, RegulatorsFilename), "vcc3v3_sys 3300000 1\n")

	ex, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ex.SupplTables) != 2 {
		t.Errorf("SupplTables = %v, want 2", ex.SupplTables)
	}
	if len(ex.I2C) != 1 || ex.I2C[0].Bus != 1 || ex.I2C[0].Address != 0x04 {
		t.Errorf("I2C = %v", ex.I2C)
	}
	if len(ex.Regulators) != 1 {
		t.Errorf("Regulators = %v", ex.Regulators)
	}
	if len(ex.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", ex.Warnings)
	}
}

func TestLoadNonACPIBootWarns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, SummaryFilename), "Boot mode: DT\n")
	writeFile(t, filepath.Join(dir, ACPISubdir, PrimaryTableName), "")
	ex, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	found := false
	for _, w := range ex.Warnings {
		if strings.Contains(w, "ACPI boot marker") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a boot-marker warning, got %v", ex.Warnings)
	}
}

func assertCode(t *testing.T, err error, code common.Err) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var cerr *common.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error %v is not a *common.Error", err)
	}
	if cerr.Code != code {
		t.Errorf("error code = %v, want %v", cerr.Code, code)
	}
}
