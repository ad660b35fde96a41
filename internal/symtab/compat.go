// Package symtab maps opaque firmware identifiers onto stable kernel
// binding names: hardware-IDs to compatible strings, controller
// symbols to DTS labels, and firmware-absolute interrupt numbers to
// bus-relative SPI numbers.
package symtab

// Category classifies a device for node naming, ordering and default
// status in the emitted tree.
type Category int

const (
	CatUnknown Category = iota
	CatI2C
	CatUART
	CatGPIO
	CatUSB
	CatPCIe
	CatDP
	CatWatchdog
	CatThermal
	CatGPU
	CatEthernet
	CatSPI
	CatPWM
	CatDMA
	CatRTC
	CatIOMMU
	CatMailbox
	CatNPU
	CatVPU
	CatAudio
	CatDisplay
	CatStorage
	CatClock
	CatReset
	CatPower
	CatInput
	CatPanel
)

func (c Category) String() string {
	switch c {
	case CatI2C:
		return "i2c"
	case CatUART:
		return "serial"
	case CatGPIO:
		return "gpio"
	case CatUSB:
		return "usb"
	case CatPCIe:
		return "pcie"
	case CatDP:
		return "dp"
	case CatWatchdog:
		return "watchdog"
	case CatThermal:
		return "thermal"
	case CatGPU:
		return "gpu"
	case CatEthernet:
		return "ethernet"
	case CatSPI:
		return "spi"
	case CatPWM:
		return "pwm"
	case CatDMA:
		return "dma"
	case CatRTC:
		return "rtc"
	case CatIOMMU:
		return "iommu"
	case CatMailbox:
		return "mailbox"
	case CatNPU:
		return "npu"
	case CatVPU:
		return "vpu"
	case CatAudio:
		return "audio"
	case CatDisplay:
		return "display"
	case CatStorage:
		return "mmc"
	case CatClock:
		return "clock-controller"
	case CatReset:
		return "reset-controller"
	case CatPower:
		return "power-controller"
	case CatInput:
		return "input"
	case CatPanel:
		return "panel"
	default:
		return "device"
	}
}

// Binding ties a hardware-ID to its kernel compatible string and
// device category.
type Binding struct {
	Compatible string
	Category   Category
}

// UnknownSentinel marks hardware-IDs absent from the table in the
// diagnostic summary. The device itself is still emitted.
const UnknownSentinel = "unknown"

// compatTable is the closed hardware-ID enumeration. Populated once,
// read-only thereafter.
var compatTable = map[string]Binding{
	// Serial
	"ARMH0011": {"arm,pl011", CatUART},

	// I2C / SPI / GPIO / PWM
	"CIXH200B": {"cdns,i2c-r1p14", CatI2C},
	"CIXH2009": {"cdns,spi-r1p6", CatSPI},
	"CIXH1003": {"cix,sky1-gpio", CatGPIO},
	"CIXH200D": {"cix,sky1-pwm", CatPWM},

	// USB
	"CIXH2030": {"snps,dwc3", CatUSB},
	"CIXH2031": {"snps,dwc3", CatUSB},
	"CIXH2032": {"cix,sky1-usb2", CatUSB},
	"CIXH2033": {"cix,sky1-usb3", CatUSB},
	"CIXH2034": {"cix,sky1-usbc", CatUSB},

	// PCIe
	"CIXH2020": {"cix,sky1-pcie", CatPCIe},
	"CIXH2021": {"cix,sky1-pcie", CatPCIe},
	"CIXH2022": {"cix,sky1-pcie", CatPCIe},
	"CIXH2023": {"cix,sky1-pcie", CatPCIe},
	"CIXH2024": {"cix,sky1-pcie", CatPCIe},

	// Display pipeline
	"CIXH5000": {"cix,sky1-dpu", CatDisplay},
	"CIXH5010": {"cix,sky1-dp", CatDP},
	"CIXH5011": {"cix,sky1-dp-phy", CatDisplay},
	"CIXH5030": {"cix,sky1-csi", CatDisplay},
	"CIXH5040": {"cix,sky1-isp", CatDisplay},
	"CIXH5050": {"cix,sky1-dsi", CatDisplay},
	"CIXH5060": {"panel-simple", CatPanel},

	// GPU / NPU / video codec
	"CIXH4000": {"arm,mali-g720", CatGPU},
	"CIXH4010": {"cix,sky1-npu", CatNPU},
	"CIXH5020": {"verisilicon,vc8000d", CatVPU},
	"CIXH5021": {"verisilicon,vc8000e", CatVPU},

	// Audio
	"CIXH6000": {"cix,sky1-i2s", CatAudio},
	"CIXH6010": {"cix,sky1-hda", CatAudio},
	"CIXH6020": {"cix,sky1-dmic", CatAudio},
	"CIXH6030": {"everest,es8316", CatAudio},
	"CIXH6040": {"cix,sky1-spdif", CatAudio},
	"CIXH6050": {"cix,sky1-adsp", CatAudio},

	// Ethernet
	"CIXH7020": {"cix,sky1-dwmac", CatEthernet},

	// Thermal / watchdog
	"CIXH3000": {"cix,sky1-thermal", CatThermal},
	"CIXH3001": {"cix,sky1-tsensor", CatThermal},
	"CIXH1010": {"arm,sbsa-gwdt", CatWatchdog},

	// System infrastructure
	"CIXH1020": {"arm,pl330", CatDMA},
	"CIXH1030": {"cix,sky1-rtc", CatRTC},
	"CIXH1040": {"cix,sky1-mbox", CatMailbox},
	"CIXH1050": {"cix,sky1-reset", CatReset},
	"CIXH1060": {"cix,sky1-cru", CatClock},
	"CIXH1070": {"cix,sky1-pd", CatPower},
	"CIXH1080": {"arm,smmu-v3", CatIOMMU},

	// Storage
	"CIXH2040": {"cix,sky1-emmc", CatStorage},
	"CIXH2041": {"cix,sky1-sd", CatStorage},
	"CIXH2042": {"cix,sky1-ufs", CatStorage},

	// Board input devices
	"PNP0C0C":  {"gpio-keys", CatInput},
	"ACPI0011": {"gpio-keys", CatInput},
}

// Lookup returns the binding for a hardware-ID. Unknown IDs pass
// through: the HID itself becomes the best-effort compatible and the
// category is CatUnknown.
func Lookup(hid string) (Binding, bool) {
	if b, ok := compatTable[hid]; ok {
		return b, true
	}
	return Binding{Compatible: hid, Category: CatUnknown}, false
}
