// Package dts renders the resolved device model as device-tree source
// text: header, fixed platform nodes, board auxiliaries, and the
// system-on-chip container.
package dts

import (
	"fmt"
	"io"
	"strings"
)

// Emitter writes one DTS file. Output order is deterministic; labels
// are allocated by the model builder.
type Emitter struct {
	w     io.Writer
	level int
	err   error
}

// NewEmitter creates an emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit renders the whole tree. The first write error is sticky and
// returned once at the end.
func (e *Emitter) Emit(m *Model) error {
	e.header(m)
	e.line("/ {")
	e.level++

	e.rootProps(m)
	e.blank()
	e.aliases()
	e.blank()
	e.chosen()
	e.blank()
	e.memory()
	e.blank()
	e.cpus(m.Cores)
	e.blank()
	e.psci()
	e.blank()
	e.timer()
	e.blank()
	e.gic()
	e.blank()
	e.clockController(m)
	e.resetControllers(m)
	e.regulators(m)
	e.boardAuxiliaries(m)
	e.soc(m)

	e.level--
	e.line("};")
	return e.err
}

func (e *Emitter) header(m *Model) {
	e.line("// SPDX-License-Identifier: (GPL-2.0-only OR MIT)")
	e.line("/*")
	e.linef(" * Device tree for the %s.", m.Model())
	e.line(" *")
	e.line(" * Generated from the firmware hardware description; do not edit.")
	e.line(" */")
	e.blank()
	e.line("/dts-v1/;")
	e.blank()
	e.line("#include <dt-bindings/interrupt-controller/arm-gic.h>")
	e.blank()
}

func (e *Emitter) rootProps(m *Model) {
	e.linef("model = %q;", m.Model())
	quoted := make([]string, len(m.Board.Compatible))
	for i, c := range m.Board.Compatible {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	e.linef("compatible = %s;", strings.Join(quoted, ", "))
	e.line("interrupt-parent = <&gic>;")
	e.line("#address-cells = <2>;")
	e.line("#size-cells = <2>;")
}

// Model returns the root model string for the board.
func (m *Model) Model() string {
	return m.Board.Model
}

func (e *Emitter) aliases() {
	e.open("aliases")
	for i := 0; i < 4; i++ {
		e.linef("serial%d = &uart%d;", i, i)
	}
	for i := 0; i < 8; i++ {
		e.linef("i2c%d = &i2c%d;", i, i)
	}
	e.close()
}

func (e *Emitter) chosen() {
	e.open("chosen")
	e.line(`stdout-path = "serial2:115200n8";`)
	e.close()
}

func (e *Emitter) memory() {
	// Default window: 16 GiB at 0x80000000. The firmware tables do
	// not carry the installed size.
	e.open("memory@80000000")
	e.line(`device_type = "memory";`)
	e.line("reg = <0x0 0x80000000 0x4 0x00000000>;")
	e.close()
}

func (e *Emitter) cpus(cores int) {
	if cores <= 0 {
		cores = 12
	}
	e.open("cpus")
	e.line("#address-cells = <1>;")
	e.line("#size-cells = <0>;")
	for i := 0; i < cores; i++ {
		compatible := "arm,cortex-a520"
		if i < 4 {
			compatible = "arm,cortex-a720"
		}
		e.blank()
		e.openf("cpu@%d", i)
		e.line(`device_type = "cpu";`)
		e.linef("compatible = %q;", compatible)
		e.linef("reg = <0x%03x>;", i*0x100)
		e.line(`enable-method = "psci";`)
		e.close()
	}
	e.close()
}

func (e *Emitter) psci() {
	e.open("psci")
	e.line(`compatible = "arm,psci-1.0";`)
	e.line(`method = "smc";`)
	e.close()
}

func (e *Emitter) timer() {
	e.open("timer")
	e.line(`compatible = "arm,armv8-timer";`)
	e.line("interrupts = <GIC_PPI 13 IRQ_TYPE_LEVEL_LOW>,")
	e.line("             <GIC_PPI 14 IRQ_TYPE_LEVEL_LOW>,")
	e.line("             <GIC_PPI 11 IRQ_TYPE_LEVEL_LOW>,")
	e.line("             <GIC_PPI 10 IRQ_TYPE_LEVEL_LOW>;")
	e.close()
}

func (e *Emitter) gic() {
	e.open("gic: interrupt-controller@e010000")
	e.line(`compatible = "arm,gic-v3";`)
	e.line("reg = <0x0 0x0e010000 0x0 0x00010000>,")
	e.line("      <0x0 0x0e080000 0x0 0x00300000>;")
	e.line("#interrupt-cells = <3>;")
	e.line("interrupt-controller;")
	e.close()
}

// clockController emits the parsed clock controller, or a fixed-rate
// placeholder so that clock references elsewhere stay well-formed.
func (e *Emitter) clockController(m *Model) {
	if m.ClockCtrl == nil {
		e.open("cru: clock")
		e.line(`compatible = "fixed-clock";`)
		e.line("clock-frequency = <24000000>;")
		e.line("#clock-cells = <1>;")
		e.close()
		e.blank()
		return
	}

	d := m.ClockCtrl.Dev
	if d.Window != nil {
		e.openf("cru: clock-controller@%08x", d.Window.Base)
	} else {
		e.open("cru: clock-controller")
	}
	e.linef("compatible = %q;", m.ClockCtrl.Binding.Compatible)
	if d.Window != nil {
		e.linef("reg = <0x0 0x%08x 0x0 0x%08x>;", d.Window.Base, d.Window.Length)
	}
	e.line("#clock-cells = <1>;")
	e.close()
	e.blank()
}

func (e *Emitter) resetControllers(m *Model) {
	for _, rc := range m.ResetCtrls {
		d := rc.Dev
		label := fmt.Sprintf("rst%d", d.UID)
		if d.Window != nil {
			e.openf("%s: reset-controller@%08x", label, d.Window.Base)
		} else {
			e.openf("%s: reset-controller", label)
		}
		e.linef("compatible = %q;", rc.Binding.Compatible)
		if d.Window != nil {
			e.linef("reg = <0x0 0x%08x 0x0 0x%08x>;", d.Window.Base, d.Window.Length)
		}
		e.line("#reset-cells = <1>;")
		e.close()
		e.blank()
	}
}

func (e *Emitter) regulators(m *Model) {
	for _, reg := range m.Regulators {
		label := sanitizeLabel(reg.Name)
		e.openf("%s: regulator-%s", label, strings.ReplaceAll(label, "_", "-"))
		e.line(`compatible = "regulator-fixed";`)
		e.linef("regulator-name = %q;", reg.Name)
		e.linef("regulator-min-microvolt = <%d>;", reg.Microvolts)
		e.linef("regulator-max-microvolt = <%d>;", reg.Microvolts)
		if reg.AlwaysOn {
			e.line("regulator-always-on;")
		}
		if reg.BootOn {
			e.line("regulator-boot-on;")
		}
		e.close()
		e.blank()
	}
}

// boardAuxiliaries emits the input and display helper nodes, each only
// when the firmware declared the underlying device.
func (e *Emitter) boardAuxiliaries(m *Model) {
	if m.HasKeys {
		e.open("gpio-keys")
		e.line(`compatible = "gpio-keys";`)
		e.blank()
		e.open("key-power")
		e.line(`label = "power";`)
		e.line("linux,code = <116>;")
		e.line("wakeup-source;")
		e.close()
		e.close()
		e.blank()
	}

	if len(m.LEDs) > 0 {
		e.open("leds")
		e.line(`compatible = "gpio-leds";`)
		for i, led := range m.LEDs {
			e.blank()
			e.openf("led-%d", i)
			if led.Label != "" {
				e.linef("label = %q;", led.Label)
			}
			if led.DefaultTrigger != "" {
				e.linef("linux,default-trigger = %q;", led.DefaultTrigger)
			}
			e.close()
		}
		e.close()
		e.blank()
	}

	if m.HasPanel {
		e.open("panel")
		e.linef("compatible = %q;", m.PanelCompatible)
		if m.BacklightPWM != "" {
			e.line("backlight = <&backlight>;")
		}
		e.close()
		e.blank()

		if m.BacklightPWM != "" {
			e.open("backlight: backlight")
			e.line(`compatible = "pwm-backlight";`)
			e.linef("pwms = <&%s 0 25000>;", m.BacklightPWM)
			e.close()
			e.blank()
		}
	}
}

// sanitizeLabel folds a regulator or similar name into a valid DTS
// label.
func sanitizeLabel(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "reg_unnamed"
	}
	return sb.String()
}

// Low-level writers. Indentation is one tab per nesting level.

func (e *Emitter) line(s string) {
	if e.err != nil {
		return
	}
	if s == "" {
		_, e.err = fmt.Fprintln(e.w)
		return
	}
	_, e.err = fmt.Fprintf(e.w, "%s%s\n", strings.Repeat("\t", e.level), s)
}

func (e *Emitter) linef(format string, args ...interface{}) {
	e.line(fmt.Sprintf(format, args...))
}

func (e *Emitter) blank() {
	e.line("")
}

func (e *Emitter) open(header string) {
	e.linef("%s {", header)
	e.level++
}

func (e *Emitter) openf(format string, args ...interface{}) {
	e.open(fmt.Sprintf(format, args...))
}

func (e *Emitter) close() {
	e.level--
	e.line("};")
}
