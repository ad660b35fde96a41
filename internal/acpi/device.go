package acpi

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PropKind is the type tag for a generic _DSD property value.
type PropKind int

const (
	PropInt PropKind = iota
	PropString
	PropFlag
)

func (k PropKind) String() string {
	switch k {
	case PropInt:
		return "int"
	case PropString:
		return "string"
	case PropFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// PropValue is a _DSD property value: integer, string, or boolean flag.
type PropValue struct {
	Kind PropKind
	Int  uint64
	Str  string
}

// MemWindow is a device register window parsed from Memory32Fixed.
type MemWindow struct {
	Base   uint32
	Length uint32
}

// GPIORef is a (controller, pin) pair parsed from a GpioIo descriptor.
type GPIORef struct {
	Controller string
	Pin        uint32
}

// ClockRef is a clock-table entry parsed from a CLKT package.
type ClockRef struct {
	ID   uint32
	Name string
}

// ResetRef is a reset-table entry parsed from an RSTL package.
type ResetRef struct {
	Controller string
	ID         uint32
	Name       string
}

// Device is one parsed hardware declaration. Created on entering a
// Device() block, mutated only while that block is being parsed.
type Device struct {
	Name         string // firmware symbolic name, e.g. I2C0
	HID          string
	UID          uint32
	Window       *MemWindow
	ExtraWindows int // Memory32Fixed windows beyond the first (ignored)
	IRQ          int // firmware-absolute interrupt, -1 when absent
	PinGroups    []string
	GPIOs        []GPIORef
	Clock        *ClockRef
	Reset        *ResetRef
	Props        map[string]PropValue
	Children     []*Device

	// Child-device fields
	IsChild bool
	Addr    uint64 // _ADR
	HasAddr bool
}

// NewDevice creates a device record for the named declaration.
func NewDevice(name string, child bool) *Device {
	return &Device{
		Name:    name,
		IRQ:     -1,
		Props:   make(map[string]PropValue),
		IsChild: child,
	}
}

// Compatible returns the device's _DSD "compatible" string, if declared.
func (d *Device) Compatible() (string, bool) {
	v, ok := d.Props["compatible"]
	if !ok || v.Kind != PropString {
		return "", false
	}
	return v.Str, true
}

// PropInt returns an integer _DSD property by key.
func (d *Device) PropInt(key string) (uint64, bool) {
	v, ok := d.Props[key]
	if !ok || v.Kind != PropInt {
		return 0, false
	}
	return v.Int, true
}

// PropString returns a string _DSD property by key.
func (d *Device) PropString(key string) (string, bool) {
	v, ok := d.Props[key]
	if !ok || v.Kind != PropString {
		return "", false
	}
	return v.Str, true
}

// PropFlag reports whether a boolean-flag _DSD property is present.
func (d *Device) PropFlag(key string) bool {
	v, ok := d.Props[key]
	return ok && v.Kind == PropFlag
}

const (
	topLevelIndent = 8
	childIndent    = 12
)

var (
	reDevice  = regexp.MustCompile(`^( *)Device\s*\(([A-Za-z0-9_]+)\)`)
	reHID     = regexp.MustCompile(`Name\s*\(_HID,\s*"([^"]*)"`)
	reHIDEisa = regexp.MustCompile(`Name\s*\(_HID,\s*EisaId\s*\("([^"]*)"`)
	reUID     = regexp.MustCompile(`Name\s*\(_UID,\s*(0x[0-9A-Fa-f]+|[0-9]+|Zero|One)\)`)
	reADR     = regexp.MustCompile(`Name\s*\(_ADR,\s*(0x[0-9A-Fa-f]+|[0-9]+|Zero|One)\)`)
)

// ParseStats counts parse events reported in the completion summary.
type ParseStats struct {
	DevicesSeen   int
	DroppedPNP    int
	DroppedNoHID  int
	ExtraWindows  int
	Deduplicated  int
}

// Parser walks device declarations in disassembled table text and
// produces a normalized device list.
type Parser struct {
	// KeepHID admits specific plug-and-play IDs through the PNP* drop
	// filter. Generic bridges such as PNP0A08 stay dropped.
	KeepHID map[string]bool

	Stats ParseStats
}

// NewParser creates a parser with the default keep-list.
func NewParser() *Parser {
	return &Parser{
		KeepHID: map[string]bool{
			"PNP0C0C": true, // power button
		},
	}
}

// ParseFile parses one disassembled table file.
func (p *Parser) ParseFile(path string) ([]*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open table %s", path)
	}
	defer f.Close()

	s, err := NewLineStream(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read table %s", path)
	}
	return p.Parse(s), nil
}

// Parse consumes the stream and returns the top-level device list.
// Malformed constructs never abort the walk; fields that cannot be
// recovered are left unset.
func (p *Parser) Parse(s *LineStream) []*Device {
	var out []*Device
	var cur *Device   // top-level device in progress
	var child *Device // child device in progress

	finishChild := func() {
		if child != nil && cur != nil {
			cur.Children = append(cur.Children, child)
		}
		child = nil
	}
	finishTop := func() {
		finishChild()
		if cur == nil {
			return
		}
		if p.keep(cur) {
			out = append(out, cur)
		}
		cur = nil
	}

	for s.Next() {
		line := s.Text()

		if m := reDevice.FindStringSubmatch(line); m != nil {
			p.Stats.DevicesSeen++
			if len(m[1]) >= childIndent && cur != nil {
				finishChild()
				child = NewDevice(m[2], true)
			} else {
				finishTop()
				cur = NewDevice(m[2], false)
			}
			continue
		}

		target := cur
		if child != nil {
			target = child
		}
		if target == nil {
			continue
		}
		p.parseField(s, line, target)
	}
	finishTop()
	return out
}

// parseField dispatches one line within a device body to the matching
// sub-parser. Child devices only carry _ADR and _DSD.
func (p *Parser) parseField(s *LineStream, line string, d *Device) {
	if strings.Contains(line, "Name (_DSD,") || strings.Contains(line, "Name(_DSD,") {
		mergeProps(d.Props, parseDSD(s))
		return
	}

	if m := reADR.FindStringSubmatch(line); m != nil {
		d.Addr = parseLiteral(m[1])
		d.HasAddr = true
		return
	}
	if d.IsChild {
		return
	}

	if m := reHID.FindStringSubmatch(line); m != nil {
		d.HID = m[1]
		return
	}
	if m := reHIDEisa.FindStringSubmatch(line); m != nil {
		d.HID = m[1]
		return
	}
	if m := reUID.FindStringSubmatch(line); m != nil {
		d.UID = uint32(parseLiteral(m[1]))
		return
	}

	switch {
	case strings.Contains(line, "Memory32Fixed"):
		p.parseMemory32Fixed(s, d)
	case strings.Contains(line, "Interrupt (ResourceConsumer") ||
		strings.Contains(line, "Interrupt(ResourceConsumer"):
		parseInterrupt(s, d)
	case strings.Contains(line, "PinGroupFunction"):
		parsePinGroupFunction(line, d)
	case strings.Contains(line, "GpioIo"):
		parseGpioIo(s, d)
	case strings.Contains(line, "Name (CLKT,") || strings.Contains(line, "Name(CLKT,"):
		d.Clock = parseCLKT(s)
	case strings.Contains(line, "Name (RSTL,") || strings.Contains(line, "Name(RSTL,"):
		d.Reset = parseRSTL(s)
	}
}

// keep applies the hardware-ID filter to a finished top-level device.
func (p *Parser) keep(d *Device) bool {
	if d.HID == "" {
		p.Stats.DroppedNoHID++
		return false
	}
	if strings.HasPrefix(d.HID, "PNP") && !p.KeepHID[d.HID] {
		p.Stats.DroppedPNP++
		return false
	}
	p.Stats.ExtraWindows += d.ExtraWindows
	return true
}

// Dedupe keeps the first occurrence of each (HID, UID) pair, preserving
// parse order. The parser's stats record how many were discarded.
func (p *Parser) Dedupe(devices []*Device) []*Device {
	type key struct {
		hid string
		uid uint32
	}
	seen := make(map[key]bool)
	out := devices[:0]
	for _, d := range devices {
		k := key{d.HID, d.UID}
		if seen[k] {
			p.Stats.Deduplicated++
			continue
		}
		seen[k] = true
		out = append(out, d)
	}
	return out
}

func mergeProps(dst, src map[string]PropValue) {
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
}

// parseLiteral converts a hex/decimal/Zero/One literal, 0 on failure.
func parseLiteral(s string) uint64 {
	switch s {
	case "Zero":
		return 0
	case "One":
		return 1
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, _ := strconv.ParseUint(s[2:], 16, 64)
		return v
	}
	v, _ := strconv.ParseUint(s, 10, 64)
	return v
}
