package extract

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Regulator is one fixed-voltage regulator record. Records come from
// PRP0001 descriptors in the supplementary tables when present, else
// from the runtime sidecar dump.
type Regulator struct {
	Name       string
	Microvolts uint32
	AlwaysOn   bool
	BootOn     bool
}

// ParseRegulators reads the runtime regulator dump: one regulator per
// line as "<name> <microvolts> <always-on 0|1>". Malformed lines are
// skipped.
func ParseRegulators(r io.Reader) []Regulator {
	var out []Regulator
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		uv, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			continue
		}
		reg := Regulator{Name: fields[0], Microvolts: uint32(uv)}
		if len(fields) >= 3 && fields[2] == "1" {
			reg.AlwaysOn = true
		}
		out = append(out, reg)
	}
	return out
}
