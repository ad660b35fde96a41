package dts

import (
	"fmt"

	"acpidts/internal/symtab"
)

// ConsoleUARTUID identifies the console UART instance; every other
// UART defaults to disabled.
const ConsoleUARTUID = 3

// DefaultI2CFrequency is used when an I2C bus declares no
// clock-frequency in its _DSD.
const DefaultI2CFrequency = 400000

// socOrder is the fixed category order of the system-on-chip
// container. Instances within a category are sorted by unique-ID.
var socOrder = []symtab.Category{
	symtab.CatI2C,
	symtab.CatUART,
	symtab.CatGPIO,
	symtab.CatUSB,
	symtab.CatPCIe,
	symtab.CatDP,
	symtab.CatWatchdog,
	symtab.CatThermal,
	symtab.CatGPU,
	symtab.CatEthernet,
	symtab.CatSPI,
	symtab.CatPWM,
	symtab.CatDMA,
	symtab.CatRTC,
	symtab.CatIOMMU,
	symtab.CatMailbox,
	symtab.CatNPU,
	symtab.CatVPU,
	symtab.CatAudio,
	symtab.CatDisplay,
	symtab.CatStorage,
	symtab.CatPower,
	symtab.CatUnknown,
}

// labelPrefixes gives the flat, deterministic label prefix per
// category. Labels are prefix + instance index; uniqueLabel adds a
// letter suffix when two devices would otherwise share a label.
var labelPrefixes = map[symtab.Category]string{
	symtab.CatI2C:      "i2c",
	symtab.CatUART:     "uart",
	symtab.CatGPIO:     "gpio",
	symtab.CatUSB:      "usb",
	symtab.CatPCIe:     "pcie",
	symtab.CatDP:       "dp",
	symtab.CatWatchdog: "wdt",
	symtab.CatThermal:  "thermal",
	symtab.CatGPU:      "gpu",
	symtab.CatEthernet: "gmac",
	symtab.CatSPI:      "spi",
	symtab.CatPWM:      "pwm",
	symtab.CatDMA:      "dma",
	symtab.CatRTC:      "rtc",
	symtab.CatIOMMU:    "smmu",
	symtab.CatMailbox:  "mbox",
	symtab.CatNPU:      "npu",
	symtab.CatVPU:      "vpu",
	symtab.CatAudio:    "snd",
	symtab.CatDisplay:  "disp",
	symtab.CatStorage:  "mmc",
	symtab.CatPower:    "pd",
	symtab.CatUnknown:  "dev",
}

// labelIndex maps a device's unique-ID to its label index. UART
// unique-IDs are 1-based in the firmware; their labels are 0-based.
func labelIndex(cat symtab.Category, uid uint32) uint32 {
	if cat == symtab.CatUART && uid > 0 {
		return uid - 1
	}
	return uid
}

// Label returns the flat node label for a category and unique-ID.
func Label(cat symtab.Category, uid uint32) string {
	return fmt.Sprintf("%s%d", labelPrefixes[cat], labelIndex(cat, uid))
}

// defaultStatus returns the status property value for a device of the
// given category and unique-ID.
func defaultStatus(cat symtab.Category, uid uint32) string {
	switch cat {
	case symtab.CatWatchdog:
		return "disabled"
	case symtab.CatUART:
		if uid == ConsoleUARTUID {
			return "okay"
		}
		return "disabled"
	default:
		return "okay"
	}
}
