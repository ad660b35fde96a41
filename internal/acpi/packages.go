package acpi

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reRSTSym   = regexp.MustCompile(`^\s*(RST[0-9]),?\s*$`)
	reQuoted   = regexp.MustCompile(`"([^"]*)"`)
	reKeyLine  = regexp.MustCompile(`^\s*"([^"]+)",\s*$`)
	reBareStr  = regexp.MustCompile(`^\s*"([^"]+)"\s*$`)
	reDecLit   = regexp.MustCompile(`^\s*([0-9]+),?\s*$`)
	reZeroOne  = regexp.MustCompile(`^\s*(Zero|One),?\s*$`)
	reHexValue = regexp.MustCompile(`^\s*0x([0-9A-Fa-f]+),?\s*$`)
)

// packageDone reports whether the current line closes a named package
// opened before rel braces were entered: depth returned to the opening
// level on a line ending with "})".
func packageDone(rel int, entered bool, line string) bool {
	return entered && rel <= 0 && strings.HasSuffix(strings.TrimSpace(line), "})")
}

// parseCLKT reads a CLKT package of packages: the first hex literal on
// a non-Package line is the clock-id, the first non-empty quoted
// string is the clock-name. An empty package yields no entry.
func parseCLKT(s *LineStream) *ClockRef {
	rel := 0
	entered := false
	var ref *ClockRef
	for s.Next() {
		line := s.Text()
		rel += s.Delta()
		if s.Delta() > 0 {
			entered = true
		}

		if !strings.Contains(line, "Package") {
			if ref == nil {
				if m := reHexLit.FindStringSubmatch(line); m != nil {
					if v, err := strconv.ParseUint(m[1], 16, 32); err == nil {
						ref = &ClockRef{ID: uint32(v)}
					}
				}
			}
			if ref != nil && ref.Name == "" {
				if m := reQuoted.FindStringSubmatch(line); m != nil && m[1] != "" {
					ref.Name = m[1]
				}
			}
		}

		if packageDone(rel, entered, line) {
			break
		}
	}
	return ref
}

// parseRSTL reads an RSTL package: a bare RSTn symbol names the reset
// controller, then the first hex literal is the reset-id and the first
// quoted identifier the reset-name.
func parseRSTL(s *LineStream) *ResetRef {
	rel := 0
	entered := false
	var ref *ResetRef
	haveID := false
	for s.Next() {
		line := s.Text()
		rel += s.Delta()
		if s.Delta() > 0 {
			entered = true
		}

		if ref == nil {
			if m := reRSTSym.FindStringSubmatch(line); m != nil {
				ref = &ResetRef{Controller: m[1]}
			}
		} else {
			if !haveID {
				if m := reHexLit.FindStringSubmatch(line); m != nil {
					if v, err := strconv.ParseUint(m[1], 16, 32); err == nil {
						ref.ID = uint32(v)
						haveID = true
					}
				}
			} else if ref.Name == "" {
				if m := reQuoted.FindStringSubmatch(line); m != nil && m[1] != "" {
					ref.Name = m[1]
				}
			}
		}

		if packageDone(rel, entered, line) {
			break
		}
	}
	if ref == nil || !haveID {
		return nil
	}
	return ref
}

// parseDSD reads a _DSD UUID-tagged package of (key, value) pairs.
// A key line holds the pending key; the following line completes the
// pair with an integer or string value. A key that never receives a
// value is stored as a boolean flag.
func parseDSD(s *LineStream) map[string]PropValue {
	props := make(map[string]PropValue)
	rel := 0
	entered := false
	pending := ""

	flush := func() {
		if pending != "" {
			props[pending] = PropValue{Kind: PropFlag}
			pending = ""
		}
	}

	for s.Next() {
		line := s.Text()
		rel += s.Delta()
		if s.Delta() > 0 {
			entered = true
		}

		switch {
		case strings.Contains(line, "ToUUID"):
			// UUID tag line, no key material.
		case pending != "":
			if m := reHexValue.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseUint(m[1], 16, 64); err == nil {
					props[pending] = PropValue{Kind: PropInt, Int: v}
					pending = ""
				}
			} else if m := reDecLit.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseUint(m[1], 10, 64); err == nil {
					props[pending] = PropValue{Kind: PropInt, Int: v}
					pending = ""
				}
			} else if m := reZeroOne.FindStringSubmatch(line); m != nil {
				v := uint64(0)
				if m[1] == "One" {
					v = 1
				}
				props[pending] = PropValue{Kind: PropInt, Int: v}
				pending = ""
			} else if m := reQuoted.FindStringSubmatch(line); m != nil {
				props[pending] = PropValue{Kind: PropString, Str: m[1]}
				pending = ""
			} else if strings.Contains(line, "}") {
				flush()
			}
		default:
			if m := reKeyLine.FindStringSubmatch(line); m != nil {
				pending = m[1]
			} else if m := reBareStr.FindStringSubmatch(line); m != nil {
				props[m[1]] = PropValue{Kind: PropFlag}
			}
		}

		if packageDone(rel, entered, line) {
			break
		}
	}
	flush()
	return props
}
