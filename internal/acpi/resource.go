package acpi

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reHex8        = regexp.MustCompile(`0x([0-9A-Fa-f]{8})`)
	reIRQLine     = regexp.MustCompile(`^\s*0x([0-9A-F]+),$`)
	reHexLit      = regexp.MustCompile(`0x([0-9A-Fa-f]+)`)
	reQuotedLower = regexp.MustCompile(`"([a-z][^"]*)"`)
	reSBCtrl      = regexp.MustCompile(`_SB\.([A-Z0-9]+)`)
)

// parseMemory32Fixed reads the (base, length) pair following a
// Memory32Fixed keyword: the next two 8-hex-digit literals, in order.
// Only the first window on a device is kept.
func (p *Parser) parseMemory32Fixed(s *LineStream, d *Device) {
	var vals []uint32
	for len(vals) < 2 && s.Next() {
		line := s.Text()
		for _, m := range reHex8.FindAllStringSubmatch(line, -1) {
			v, err := strconv.ParseUint(m[1], 16, 32)
			if err != nil {
				continue
			}
			vals = append(vals, uint32(v))
			if len(vals) == 2 {
				break
			}
		}
		// The descriptor closes with a lone parenthesis.
		if strings.TrimSpace(line) == ")" {
			break
		}
	}
	if len(vals) < 2 {
		return
	}
	if d.Window != nil {
		d.ExtraWindows++
		return
	}
	d.Window = &MemWindow{Base: vals[0], Length: vals[1]}
}

// parseInterrupt reads the firmware interrupt number following an
// Interrupt (ResourceConsumer...) keyword: the first standalone hex
// literal on its own line.
func parseInterrupt(s *LineStream, d *Device) {
	d0 := s.Depth()
	entered := false
	for s.Next() {
		line := s.Text()
		if reDevice.MatchString(line) {
			s.Back()
			return
		}
		if m := reIRQLine.FindStringSubmatch(line); m != nil {
			v, err := strconv.ParseUint(m[1], 16, 32)
			if err == nil {
				d.IRQ = int(v)
			}
			return
		}
		if s.Depth() > d0 {
			entered = true
		}
		if entered && s.Depth() <= d0 {
			return
		}
	}
}

// parsePinGroupFunction appends the pin-group label named on the
// keyword line: the first quoted identifier beginning with a lowercase
// letter.
func parsePinGroupFunction(line string, d *Device) {
	if m := reQuotedLower.FindStringSubmatch(line); m != nil {
		d.PinGroups = append(d.PinGroups, m[1])
	}
}

// parseGpioIo reads a GpioIo descriptor: the controller is named on a
// subsequent \_SB.<ID> line, and the pin indices follow the "Pin list"
// marker. Each (controller, pin) pair is appended in order.
func parseGpioIo(s *LineStream, d *Device) {
	d0 := s.Depth()
	entered := false
	controller := ""
	inPins := false
	for s.Next() {
		line := s.Text()
		if reDevice.MatchString(line) {
			s.Back()
			return
		}
		if controller == "" {
			if m := reSBCtrl.FindStringSubmatch(line); m != nil {
				controller = m[1]
			}
		}
		if strings.Contains(line, "Pin list") {
			inPins = true
		}
		if inPins && controller != "" {
			for _, m := range reHexLit.FindAllStringSubmatch(line, -1) {
				v, err := strconv.ParseUint(m[1], 16, 32)
				if err != nil {
					continue
				}
				d.GPIOs = append(d.GPIOs, GPIORef{Controller: controller, Pin: uint32(v)})
			}
		}
		if s.Depth() > d0 {
			entered = true
		}
		if entered && s.Depth() <= d0 {
			return
		}
	}
}
