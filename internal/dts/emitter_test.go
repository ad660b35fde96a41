package dts

import (
	"bytes"
	"strings"
	"testing"

	"acpidts/internal/acpi"
	"acpidts/internal/extract"
)

func testExtraction() *extract.Extraction {
	return &extract.Extraction{
		Summary: extract.Summary{Cores: 12, ACPIBoot: true},
		Board:   extract.DetectBoard("Radxa Orion O6"),
	}
}

func render(t *testing.T, devices []*acpi.Device, ex *extract.Extraction) string {
	t.Helper()
	m := BuildModel(devices, ex)
	var buf bytes.Buffer
	if err := NewEmitter(&buf).Emit(m); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestEmitHeaderAndRoot(t *testing.T) {
	out := render(t, nil, testExtraction())

	if !strings.HasPrefix(out, "// SPDX-License-Identifier: (GPL-2.0-only OR MIT)\n") {
		t.Error("output does not start with the SPDX line")
	}
	assertContains(t, out,
		"/dts-v1/;",
		"#include <dt-bindings/interrupt-controller/arm-gic.h>",
		`model = "Radxa Orion O6";`,
		`compatible = "radxa,orion-o6", "cix,sky1";`,
		"interrupt-parent = <&gic>;",
		`stdout-path = "serial2:115200n8";`,
		"memory@80000000 {",
		"reg = <0x0 0x80000000 0x4 0x00000000>;",
		"gic: interrupt-controller@e010000 {",
		`compatible = "arm,gic-v3";`,
		`method = "smc";`,
		`compatible = "arm,armv8-timer";`,
		"soc@0 {",
	)
}

func TestEmitCPUCluster(t *testing.T) {
	ex := testExtraction()
	ex.Summary.Cores = 6
	out := render(t, nil, ex)

	if got := strings.Count(out, `enable-method = "psci";`); got != 6 {
		t.Errorf("cpu node count = %d, want 6", got)
	}
	if got := strings.Count(out, `compatible = "arm,cortex-a720";`); got != 4 {
		t.Errorf("big core count = %d, want 4", got)
	}
	if got := strings.Count(out, `compatible = "arm,cortex-a520";`); got != 2 {
		t.Errorf("little core count = %d, want 2", got)
	}
}

func seedI2CDevice() *acpi.Device {
	return &acpi.Device{
		Name:      "I2C0",
		HID:       "CIXH200B",
		UID:       0,
		Window:    &acpi.MemWindow{Base: 0x04010000, Length: 0x00010000},
		IRQ:       0x13E,
		PinGroups: []string{"pinctrl_fch_i2c0"},
		Clock:     &acpi.ClockRef{ID: 0xFD},
		Reset:     &acpi.ResetRef{Controller: "RST1", ID: 0x12, Name: "i2c_reset"},
		Props: map[string]acpi.PropValue{
			"clock-frequency": {Kind: acpi.PropInt, Int: 0x61A80},
		},
	}
}

func TestEmitSeedI2C(t *testing.T) {
	out := render(t, []*acpi.Device{seedI2CDevice()}, testExtraction())

	assertContains(t, out,
		"i2c0: i2c@04010000 {",
		`compatible = "cdns,i2c-r1p14";`,
		"reg = <0x0 0x04010000 0x0 0x00010000>;",
		"interrupts = <GIC_SPI 286 IRQ_TYPE_LEVEL_HIGH>;",
		"clocks = <&cru 253>;",
		"resets = <&rst1 18>;",
		`reset-names = "i2c_reset";`,
		`pinctrl-names = "default";`,
		"pinctrl-0 = <&pinctrl_fch_i2c0>;",
		"clock-frequency = <400000>;",
	)
	if !strings.Contains(out, `status = "okay";`) {
		t.Error("i2c bus should default to okay")
	}
}

func TestEmitUARTStatus(t *testing.T) {
	console := &acpi.Device{
		Name: "URT3", HID: "ARMH0011", UID: 3,
		Window: &acpi.MemWindow{Base: 0x040D0000, Length: 0x00010000},
		IRQ:    0x14A,
		Props:  map[string]acpi.PropValue{},
	}
	aux := &acpi.Device{
		Name: "URT1", HID: "ARMH0011", UID: 1,
		Window: &acpi.MemWindow{Base: 0x040B0000, Length: 0x00010000},
		IRQ:    0x148,
		Props:  map[string]acpi.PropValue{},
	}
	out := render(t, []*acpi.Device{console, aux}, testExtraction())

	assertContains(t, out,
		"uart2: serial@040d0000 {",
		"interrupts = <GIC_SPI 298 IRQ_TYPE_LEVEL_HIGH>;",
		"uart0: serial@040b0000 {",
		"interrupts = <GIC_SPI 296 IRQ_TYPE_LEVEL_HIGH>;",
	)

	// Console UART is okay, the others disabled.
	consoleIdx := strings.Index(out, "uart2: serial@040d0000 {")
	auxIdx := strings.Index(out, "uart0: serial@040b0000 {")
	consoleNode := out[consoleIdx:strings.Index(out[consoleIdx:], "};")+consoleIdx]
	auxNode := out[auxIdx:strings.Index(out[auxIdx:], "};")+auxIdx]
	if !strings.Contains(consoleNode, `status = "okay";`) {
		t.Error("console UART should be okay")
	}
	if !strings.Contains(auxNode, `status = "disabled";`) {
		t.Error("non-console UART should be disabled")
	}
}

func TestEmitGPIOController(t *testing.T) {
	d := &acpi.Device{
		Name: "GPI0", HID: "CIXH1003", UID: 0,
		Window: &acpi.MemWindow{Base: 0x04120000, Length: 0x00010000},
		IRQ:    0x151,
		Props:  map[string]acpi.PropValue{},
	}
	out := render(t, []*acpi.Device{d}, testExtraction())

	assertContains(t, out,
		"gpio0: gpio@04120000 {",
		"interrupts = <GIC_SPI 305 IRQ_TYPE_LEVEL_HIGH>;",
		"gpio-controller;",
		"#gpio-cells = <2>;",
		"interrupt-controller;",
		"#interrupt-cells = <2>;",
	)
}

func TestEmitEthernetPHY(t *testing.T) {
	phy := acpi.NewDevice("PHY0", true)
	phy.Addr = 1
	phy.HasAddr = true
	phy.Props["compatible"] = acpi.PropValue{Kind: acpi.PropString, Str: "ethernet-phy-ieee802.3-c22"}

	mac := &acpi.Device{
		Name: "ETH0", HID: "CIXH7020", UID: 0,
		Window:   &acpi.MemWindow{Base: 0x08000000, Length: 0x00080000},
		IRQ:      0x160,
		Props:    map[string]acpi.PropValue{},
		Children: []*acpi.Device{phy},
	}
	out := render(t, []*acpi.Device{mac}, testExtraction())

	assertContains(t, out,
		"gmac0: ethernet@08000000 {",
		"mdio {",
		"ethernet-phy@1 {",
		`compatible = "ethernet-phy-ieee802.3-c22";`,
		"reg = <1>;",
	)
}

func TestEmitI2CProbeChildren(t *testing.T) {
	bus := &acpi.Device{
		Name: "I2C3", HID: "CIXH200B", UID: 3,
		Window: &acpi.MemWindow{Base: 0x04040000, Length: 0x00010000},
		IRQ:    0x141,
		Props:  map[string]acpi.PropValue{},
	}
	ex := testExtraction()
	ex.I2C = []extract.I2CDetection{
		{Bus: 3, Address: 0x51},
		{Bus: 4, Address: 0x20}, // no matching bus device
	}
	out := render(t, []*acpi.Device{bus}, ex)

	assertContains(t, out,
		"i2c3: i2c@04040000 {",
		"device@51 {",
		"reg = <0x51>;",
		"/* unidentified device at 0x51 */",
	)
	if strings.Contains(out, "device@20") {
		t.Error("probe hit on an undeclared bus must not be emitted")
	}
}

func TestPlaceholderClock(t *testing.T) {
	uart := &acpi.Device{
		Name: "URT3", HID: "ARMH0011", UID: 3,
		Window: &acpi.MemWindow{Base: 0x040D0000, Length: 0x00010000},
		IRQ:    0x14A,
		Clock:  &acpi.ClockRef{ID: 0x21, Name: "apb_pclk"},
		Props:  map[string]acpi.PropValue{},
	}
	out := render(t, []*acpi.Device{uart}, testExtraction())

	assertContains(t, out,
		"cru: clock {",
		`compatible = "fixed-clock";`,
		"clock-frequency = <24000000>;",
		"clocks = <&cru 33>;",
		`clock-names = "apb_pclk";`,
	)
}

func TestParsedClockAndResetControllers(t *testing.T) {
	cru := &acpi.Device{
		Name: "CRU0", HID: "CIXH1060", UID: 0,
		Window: &acpi.MemWindow{Base: 0x04130000, Length: 0x00100000},
		IRQ:    -1,
		Props:  map[string]acpi.PropValue{},
	}
	rst1 := &acpi.Device{
		Name: "RST1", HID: "CIXH1050", UID: 1,
		Window: &acpi.MemWindow{Base: 0x04140000, Length: 0x00010000},
		IRQ:    -1,
		Props:  map[string]acpi.PropValue{},
	}
	out := render(t, []*acpi.Device{cru, rst1}, testExtraction())

	assertContains(t, out,
		"cru: clock-controller@04130000 {",
		`compatible = "cix,sky1-cru";`,
		"#clock-cells = <1>;",
		"rst1: reset-controller@04140000 {",
		`compatible = "cix,sky1-reset";`,
		"#reset-cells = <1>;",
	)
	if strings.Contains(out, `compatible = "fixed-clock";`) {
		t.Error("placeholder clock must not be emitted when a clock controller was parsed")
	}
}

func TestRegulatorPrecedence(t *testing.T) {
	ex := testExtraction()
	ex.Regulators = []extract.Regulator{{Name: "vcc_sidecar", Microvolts: 1800000}}

	// Table-recovered regulators win over the runtime dump.
	prp := acpi.NewDevice("REG0", false)
	prp.HID = PRP0001HID
	prp.Props["compatible"] = acpi.PropValue{Kind: acpi.PropString, Str: "regulator-fixed"}
	prp.Props["regulator-name"] = acpi.PropValue{Kind: acpi.PropString, Str: "vcc3v3_sys"}
	prp.Props["regulator-min-microvolt"] = acpi.PropValue{Kind: acpi.PropInt, Int: 3300000}
	prp.Props["regulator-always-on"] = acpi.PropValue{Kind: acpi.PropInt, Int: 1}

	out := render(t, []*acpi.Device{prp}, ex)

	assertContains(t, out,
		"vcc3v3_sys: regulator-vcc3v3-sys {",
		`compatible = "regulator-fixed";`,
		`regulator-name = "vcc3v3_sys";`,
		"regulator-min-microvolt = <3300000>;",
		"regulator-max-microvolt = <3300000>;",
		"regulator-always-on;",
	)
	if strings.Contains(out, "vcc_sidecar") {
		t.Error("sidecar regulator emitted despite table-recovered regulators")
	}
}

func TestSidecarRegulatorFallback(t *testing.T) {
	ex := testExtraction()
	ex.Regulators = []extract.Regulator{{Name: "vcc_sidecar", Microvolts: 1800000, AlwaysOn: true}}
	out := render(t, nil, ex)

	assertContains(t, out,
		`regulator-name = "vcc_sidecar";`,
		"regulator-min-microvolt = <1800000>;",
		"regulator-always-on;",
	)
}

func TestBoardAuxiliaries(t *testing.T) {
	keys := acpi.NewDevice("PWRB", false)
	keys.HID = "PNP0C0C"

	leds := acpi.NewDevice("LEDS", false)
	leds.HID = PRP0001HID
	leds.Props["compatible"] = acpi.PropValue{Kind: acpi.PropString, Str: "gpio-leds"}
	led := acpi.NewDevice("LED0", true)
	led.Props["label"] = acpi.PropValue{Kind: acpi.PropString, Str: "user-led1"}
	led.Props["linux,default-trigger"] = acpi.PropValue{Kind: acpi.PropString, Str: "heartbeat"}
	leds.Children = []*acpi.Device{led}

	panel := acpi.NewDevice("PNL0", false)
	panel.HID = "CIXH5060"

	pwm := &acpi.Device{
		Name: "PWM0", HID: "CIXH200D", UID: 0,
		Window: &acpi.MemWindow{Base: 0x04150000, Length: 0x00010000},
		IRQ:    0x155,
		Props:  map[string]acpi.PropValue{},
	}

	out := render(t, []*acpi.Device{keys, leds, panel, pwm}, testExtraction())

	assertContains(t, out,
		"gpio-keys {",
		"linux,code = <116>;",
		"wakeup-source;",
		"leds {",
		`label = "user-led1";`,
		`linux,default-trigger = "heartbeat";`,
		"panel {",
		`compatible = "panel-simple";`,
		"backlight = <&backlight>;",
		"backlight: backlight {",
		`compatible = "pwm-backlight";`,
		"pwms = <&pwm0 0 25000>;",
	)
}

func TestLabelUniqueness(t *testing.T) {
	// Two different audio hardware-IDs sharing a unique-ID must not
	// collide on a label.
	a := &acpi.Device{Name: "I2S0", HID: "CIXH6000", UID: 0, IRQ: -1, Props: map[string]acpi.PropValue{}}
	b := &acpi.Device{Name: "HDA0", HID: "CIXH6010", UID: 0, IRQ: -1, Props: map[string]acpi.PropValue{}}

	m := BuildModel([]*acpi.Device{a, b}, testExtraction())
	if len(m.SoC) != 2 {
		t.Fatalf("SoC device count = %d, want 2", len(m.SoC))
	}
	if m.SoC[0].Label == m.SoC[1].Label {
		t.Errorf("labels collide: %q", m.SoC[0].Label)
	}
}

func TestDeviceWithoutWindowOrInterrupt(t *testing.T) {
	d := &acpi.Device{Name: "THS0", HID: "CIXH3000", UID: 0, IRQ: -1, Props: map[string]acpi.PropValue{}}
	out := render(t, []*acpi.Device{d}, testExtraction())

	assertContains(t, out, "thermal0: thermal {")
	node := out[strings.Index(out, "thermal0: thermal {"):]
	node = node[:strings.Index(node, "};")]
	if strings.Contains(node, "reg = ") {
		t.Error("node without a window must not carry reg")
	}
	if strings.Contains(node, "interrupts = ") {
		t.Error("node without an interrupt must not carry interrupts")
	}
}

func TestUnknownHIDStillEmitted(t *testing.T) {
	d := &acpi.Device{
		Name: "MYST", HID: "CIXHFFFF", UID: 0,
		Window: &acpi.MemWindow{Base: 0x04160000, Length: 0x00001000},
		IRQ:    0x170,
		Props:  map[string]acpi.PropValue{},
	}
	m := BuildModel([]*acpi.Device{d}, testExtraction())
	if len(m.UnknownHIDs) != 1 || m.UnknownHIDs[0] != "CIXHFFFF" {
		t.Errorf("UnknownHIDs = %v", m.UnknownHIDs)
	}

	var buf bytes.Buffer
	if err := NewEmitter(&buf).Emit(m); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	assertContains(t, buf.String(),
		"dev0: device@04160000 {",
		`compatible = "CIXHFFFF";`,
	)
}
