package extract

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// DefaultCores is assumed when the summary does not report a core count.
const DefaultCores = 12

// Summary is the parsed identification summary (00-summary.txt).
type Summary struct {
	BootMode    string
	ACPIBoot    bool
	Cores       int
	ProductName string
}

// ParseSummary reads the identification summary. Unreadable fields
// fall back to defaults; the file is never rejected.
func ParseSummary(r io.Reader) Summary {
	sum := Summary{Cores: DefaultCores}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "Boot mode:"):
			sum.BootMode = strings.TrimSpace(strings.TrimPrefix(line, "Boot mode:"))
			sum.ACPIBoot = strings.Contains(sum.BootMode, "ACPI")
		case strings.HasPrefix(line, "Cores:"):
			v := strings.TrimSpace(strings.TrimPrefix(line, "Cores:"))
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				sum.Cores = n
			}
		case strings.HasPrefix(line, "Product Name:"):
			sum.ProductName = strings.TrimSpace(strings.TrimPrefix(line, "Product Name:"))
		}
	}
	return sum
}

// BoardIdentity selects the DTS root model and compatible strings.
type BoardIdentity struct {
	Variant    string
	Model      string
	Compatible []string
}

var (
	boardBaseline = BoardIdentity{
		Variant:    "O6",
		Model:      "Radxa Orion O6",
		Compatible: []string{"radxa,orion-o6", "cix,sky1"},
	}
	boardVariantN = BoardIdentity{
		Variant:    "O6N",
		Model:      "Radxa Orion O6N",
		Compatible: []string{"radxa,orion-o6n", "cix,sky1"},
	}
)

// DetectBoard picks the board variant from the product name. The
// N-variant markers are the board name O6N and the SoC bin CD8160.
func DetectBoard(productName string) BoardIdentity {
	if strings.Contains(productName, "O6N") || strings.Contains(productName, "CD8160") {
		return boardVariantN
	}
	return boardBaseline
}
