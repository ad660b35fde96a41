package dts

import (
	"fmt"
	"strings"

	"acpidts/internal/acpi"
	"acpidts/internal/symtab"
)

// soc emits the flat system-on-chip container with every peripheral
// instance in fixed category order.
func (e *Emitter) soc(m *Model) {
	e.open("soc@0")
	e.line(`compatible = "simple-bus";`)
	e.line("#address-cells = <2>;")
	e.line("#size-cells = <2>;")
	e.line("ranges;")

	for i := range m.SoC {
		e.blank()
		e.device(m, &m.SoC[i])
	}

	e.close()
}

// device emits one peripheral node.
func (e *Emitter) device(m *Model, sd *SoCDevice) {
	d := sd.Dev
	node := sd.Binding.Category.String()
	if d.Window != nil {
		e.openf("%s: %s@%08x", sd.Label, node, d.Window.Base)
	} else {
		e.openf("%s: %s", sd.Label, node)
	}

	e.linef("compatible = %q;", sd.Binding.Compatible)
	if d.Window != nil {
		e.linef("reg = <0x0 0x%08x 0x0 0x%08x>;", d.Window.Base, d.Window.Length)
	}
	if d.IRQ >= 0 {
		e.linef("interrupts = <GIC_SPI %d IRQ_TYPE_LEVEL_HIGH>;", symtab.SPINumber(d.IRQ))
	}
	if d.Clock != nil {
		e.linef("clocks = <&cru %d>;", d.Clock.ID)
		if d.Clock.Name != "" {
			e.linef("clock-names = %q;", d.Clock.Name)
		}
	}
	if d.Reset != nil {
		e.linef("resets = <&%s %d>;", symtab.ControllerLabel(d.Reset.Controller), d.Reset.ID)
		if d.Reset.Name != "" {
			e.linef("reset-names = %q;", d.Reset.Name)
		}
	}
	if len(d.PinGroups) > 0 {
		e.line(`pinctrl-names = "default";`)
		e.linef("pinctrl-0 = <&%s>;", d.PinGroups[0])
	}
	if len(d.GPIOs) > 0 {
		refs := make([]string, len(d.GPIOs))
		for i, g := range d.GPIOs {
			refs[i] = fmt.Sprintf("<&%s %d 0>", symtab.ControllerLabel(g.Controller), g.Pin)
		}
		e.linef("gpios = %s;", strings.Join(refs, ", "))
	}

	e.categoryProps(sd)
	e.linef("status = %q;", defaultStatus(sd.Binding.Category, d.UID))

	switch sd.Binding.Category {
	case symtab.CatI2C:
		e.i2cChildren(m, d)
	case symtab.CatEthernet:
		e.mdio(d)
	}

	e.close()
}

// categoryProps emits the category-specific fixed properties and the
// device-specific scalars recovered from _DSD.
func (e *Emitter) categoryProps(sd *SoCDevice) {
	d := sd.Dev
	switch sd.Binding.Category {
	case symtab.CatI2C:
		freq := uint64(DefaultI2CFrequency)
		if v, ok := d.PropInt("clock-frequency"); ok {
			freq = v
		}
		e.linef("clock-frequency = <%d>;", freq)
		e.line("#address-cells = <1>;")
		e.line("#size-cells = <0>;")
	case symtab.CatGPIO:
		e.line("gpio-controller;")
		e.line("#gpio-cells = <2>;")
		e.line("interrupt-controller;")
		e.line("#interrupt-cells = <2>;")
	case symtab.CatPWM:
		e.line("#pwm-cells = <3>;")
	case symtab.CatUART:
		if v, ok := d.PropInt("clock-frequency"); ok {
			e.linef("clock-frequency = <%d>;", v)
		}
	}
}

// i2cChildren emits a placeholder node for every address the runtime
// probe detected on this bus.
func (e *Emitter) i2cChildren(m *Model, d *acpi.Device) {
	for _, det := range m.I2CProbe {
		if det.Bus != int(d.UID) {
			continue
		}
		e.blank()
		e.openf("device@%x", det.Address)
		e.linef("/* unidentified device at 0x%02x */", det.Address)
		e.linef("reg = <0x%02x>;", det.Address)
		e.close()
	}
}

// mdio emits the nested MDIO bus of an Ethernet MAC with one PHY node
// per child device that declares an _ADR; children without one are
// skipped.
func (e *Emitter) mdio(d *acpi.Device) {
	if len(d.Children) == 0 {
		return
	}
	e.blank()
	e.open("mdio")
	e.line("#address-cells = <1>;")
	e.line("#size-cells = <0>;")
	for _, child := range d.Children {
		if !child.HasAddr {
			continue
		}
		e.blank()
		e.openf("ethernet-phy@%d", child.Addr)
		if c, ok := child.Compatible(); ok {
			e.linef("compatible = %q;", c)
		}
		e.linef("reg = <%d>;", child.Addr)
		e.close()
	}
	e.close()
}
