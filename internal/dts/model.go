package dts

import (
	"sort"

	"acpidts/internal/acpi"
	"acpidts/internal/extract"
	"acpidts/internal/symtab"
)

// PRP0001HID marks generic device-tree-compatible descriptors in the
// firmware tables; their binding comes from the _DSD compatible.
const PRP0001HID = "PRP0001"

// SoCDevice is one peripheral instance resolved for emission.
type SoCDevice struct {
	Dev        *acpi.Device
	Binding    symtab.Binding
	Known      bool
	Label      string
}

// LED is one labeled LED entry recovered from a gpio-leds descriptor.
type LED struct {
	Label          string
	DefaultTrigger string
}

// Model is the fully resolved input of the emitter.
type Model struct {
	Board extract.BoardIdentity
	Cores int

	SoC        []SoCDevice // fixed category order, UID order within
	ClockCtrl  *SoCDevice  // nil when the firmware declared none
	ResetCtrls []SoCDevice // UID order

	Regulators []extract.Regulator
	I2CProbe   []extract.I2CDetection

	HasKeys bool
	LEDs    []LED

	PanelCompatible string
	HasPanel        bool
	BacklightPWM    string // pwm label, empty when no PWM instance exists

	// UnknownHIDs tallies hardware-IDs absent from the compatible
	// table, for the diagnostic summary.
	UnknownHIDs []string
}

// BuildModel resolves a parsed device list and extraction sidecars
// into the emitter's input. Fixed regulators recovered from the
// tables take precedence over the runtime sidecar dump.
func BuildModel(devices []*acpi.Device, ex *extract.Extraction) *Model {
	m := &Model{
		Board:    ex.Board,
		Cores:    ex.Summary.Cores,
		I2CProbe: ex.I2C,
	}

	var tableRegulators []extract.Regulator
	byCat := make(map[symtab.Category][]SoCDevice)

	for _, d := range devices {
		if d.HID == PRP0001HID {
			if consumePRP0001(m, &tableRegulators, d) {
				continue
			}
		}

		binding, known := symtab.Lookup(d.HID)
		if d.HID == PRP0001HID {
			if c, ok := d.Compatible(); ok {
				binding = symtab.Binding{Compatible: c, Category: symtab.CatUnknown}
			}
		}
		if !known {
			m.UnknownHIDs = append(m.UnknownHIDs, d.HID)
		}

		sd := SoCDevice{Dev: d, Binding: binding, Known: known}
		switch binding.Category {
		case symtab.CatInput:
			m.HasKeys = true
		case symtab.CatPanel:
			m.HasPanel = true
			m.PanelCompatible = binding.Compatible
		case symtab.CatClock:
			if m.ClockCtrl == nil {
				c := sd
				m.ClockCtrl = &c
			}
		case symtab.CatReset:
			m.ResetCtrls = append(m.ResetCtrls, sd)
		default:
			byCat[binding.Category] = append(byCat[binding.Category], sd)
		}
	}

	sort.Slice(m.ResetCtrls, func(i, j int) bool {
		return m.ResetCtrls[i].Dev.UID < m.ResetCtrls[j].Dev.UID
	})

	taken := make(map[string]bool)
	for _, cat := range socOrder {
		list := byCat[cat]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Dev.UID < list[j].Dev.UID
		})
		for i := range list {
			list[i].Label = uniqueLabel(taken, cat, list[i].Dev.UID)
		}
		m.SoC = append(m.SoC, list...)
	}

	if m.HasPanel {
		for _, sd := range m.SoC {
			if sd.Binding.Category == symtab.CatPWM {
				m.BacklightPWM = sd.Label
				break
			}
		}
	}

	if len(tableRegulators) > 0 {
		m.Regulators = tableRegulators
	} else {
		m.Regulators = ex.Regulators
	}

	return m
}

// consumePRP0001 folds a recognized generic descriptor into the board
// context. It reports false for compatibles it does not recognize, in
// which case the device flows into the soc container.
func consumePRP0001(m *Model, regs *[]extract.Regulator, d *acpi.Device) bool {
	compat, ok := d.Compatible()
	if !ok {
		return false
	}
	switch compat {
	case "regulator-fixed":
		reg := extract.Regulator{}
		if v, ok := d.PropString("regulator-name"); ok {
			reg.Name = v
		} else {
			reg.Name = d.Name
		}
		if v, ok := d.PropInt("regulator-min-microvolt"); ok {
			reg.Microvolts = uint32(v)
		}
		reg.AlwaysOn = boolProp(d, "regulator-always-on")
		reg.BootOn = boolProp(d, "regulator-boot-on")
		*regs = append(*regs, reg)
		return true
	case "gpio-leds":
		for _, child := range d.Children {
			led := LED{}
			if v, ok := child.PropString("label"); ok {
				led.Label = v
			}
			if v, ok := child.PropString("linux,default-trigger"); ok {
				led.DefaultTrigger = v
			}
			m.LEDs = append(m.LEDs, led)
		}
		return true
	case "gpio-keys":
		m.HasKeys = true
		return true
	}
	return false
}

// boolProp accepts both encodings the firmware uses for booleans: a
// bare flag and an integer value.
func boolProp(d *acpi.Device, key string) bool {
	if d.PropFlag(key) {
		return true
	}
	v, ok := d.PropInt(key)
	return ok && v != 0
}

// uniqueLabel allocates the flat category+UID label, suffixing in the
// rare case two hardware-IDs of one category share a unique-ID.
func uniqueLabel(taken map[string]bool, cat symtab.Category, uid uint32) string {
	label := Label(cat, uid)
	for n := 1; taken[label]; n++ {
		label = Label(cat, uid) + string(rune('a'+n-1))
	}
	taken[label] = true
	return label
}
