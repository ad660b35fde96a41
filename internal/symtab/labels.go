package symtab

import "strings"

// SPIOffset is the architectural base of the shared peripheral
// interrupt range.
const SPIOffset = 32

// SPINumber converts a firmware-absolute interrupt number to a
// bus-relative SPI number. Values at or below the offset signal a
// parse-failure fallback and translate to 0.
func SPINumber(firmware int) int {
	if firmware > SPIOffset {
		return firmware - SPIOffset
	}
	return 0
}

// controllerLabels maps firmware controller symbols to their stable
// DTS labels. GPI0..3 are the main power-domain GPIO banks, GPI4..6
// the always-on banks.
var controllerLabels = map[string]string{
	"GPI0": "fch_gpio0",
	"GPI1": "fch_gpio1",
	"GPI2": "fch_gpio2",
	"GPI3": "fch_gpio3",
	"GPI4": "s5_gpio0",
	"GPI5": "s5_gpio1",
	"GPI6": "s5_gpio2",
	"RST0": "rst0",
	"RST1": "rst1",
	"CRU0": "cru",
}

// ControllerLabel maps a firmware controller symbol to its DTS label.
// Already-translated labels pass through unchanged, so the mapping is
// idempotent; unrecognized symbols fold to lower case.
func ControllerLabel(sym string) string {
	if label, ok := controllerLabels[sym]; ok {
		return label
	}
	return strings.ToLower(sym)
}
