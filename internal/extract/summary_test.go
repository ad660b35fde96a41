package extract

import (
	"strings"
	"testing"
)

func TestParseSummary(t *testing.T) {
	text := `Product Name: Radxa Orion O6
Boot mode: ACPI (UEFI)
Cores: 8
`
	sum := ParseSummary(strings.NewReader(text))
	if sum.ProductName != "Radxa Orion O6" {
		t.Errorf("ProductName = %q", sum.ProductName)
	}
	if !sum.ACPIBoot {
		t.Error("ACPIBoot = false, want true")
	}
	if sum.Cores != 8 {
		t.Errorf("Cores = %d, want 8", sum.Cores)
	}
}

func TestParseSummaryDefaults(t *testing.T) {
	sum := ParseSummary(strings.NewReader("Boot mode: DT\n"))
	if sum.ACPIBoot {
		t.Error("ACPIBoot = true for a device-tree boot")
	}
	if sum.Cores != DefaultCores {
		t.Errorf("Cores = %d, want default %d", sum.Cores, DefaultCores)
	}
}

func TestDetectBoard(t *testing.T) {
	tests := []struct {
		name    string
		product string
		variant string
	}{
		{"baseline", "Radxa Orion O6", "O6"},
		{"n by board name", "Radxa Orion O6N", "O6N"},
		{"n by soc bin", "Sky1 CD8160 EVB", "O6N"},
		{"empty", "", "O6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectBoard(tt.product)
			if got.Variant != tt.variant {
				t.Errorf("DetectBoard(%q).Variant = %q, want %q", tt.product, got.Variant, tt.variant)
			}
			if got.Model == "" || len(got.Compatible) == 0 {
				t.Errorf("board identity incomplete: %+v", got)
			}
		})
	}
}
