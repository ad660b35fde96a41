// Package gen drives one conversion: read the extraction directory,
// parse the tables, resolve symbols, and write the generated DTS.
package gen

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"acpidts/internal/acpi"
	"acpidts/internal/common"
	"acpidts/internal/dts"
	"acpidts/internal/extract"
)

// DefaultOutputName is used when no output path is given.
const DefaultOutputName = "generated.dts"

// Config mirrors the command line arguments of the generator.
type Config struct {
	ExtractDir string
	OutputPath string // empty selects <ExtractDir>/generated.dts
	Verbose    bool
	Quiet      bool

	Logger        common.Logger
	SummaryWriter io.Writer // defaults to stderr
}

// Result reports what one run produced, for the completion summary
// and for tests.
type Result struct {
	OutputPath string
	Lines      int
	Model      *dts.Model
	Devices    []*acpi.Device
	Stats      acpi.ParseStats
}

// Run performs one conversion. Configuration errors abort with a
// coded error; degraded inputs are warned and processing continues.
func Run(cfg Config) (*Result, error) {
	log := cfg.Logger
	if log == nil {
		minLevel := common.SeverityInfo
		if cfg.Verbose {
			minLevel = common.SeverityDebug
		}
		log = common.NewStdLogger(minLevel)
	}

	if cfg.ExtractDir == "" {
		return nil, common.NewErrorMsg(common.ErrSevError, common.ErrBadArgs,
			"extraction directory argument is required")
	}

	log.Logf(common.SeverityInfo, "reading extraction from path %s", cfg.ExtractDir)
	ex, err := extract.Load(cfg.ExtractDir)
	if err != nil {
		return nil, err
	}
	for _, w := range ex.Warnings {
		log.Warning(w)
	}
	log.Logf(common.SeverityInfo, "board: %s (%d cores)", ex.Board.Model, ex.Summary.Cores)

	parser := acpi.NewParser()
	devices, err := parser.ParseFile(ex.PrimaryTable)
	if err != nil {
		return nil, errors.Wrap(err, "parse primary table")
	}
	log.Logf(common.SeverityDebug, "primary table: %d devices", len(devices))

	for _, path := range ex.SupplTables {
		more, err := parser.ParseFile(path)
		if err != nil {
			log.Warning(err.Error())
			continue
		}
		log.Logf(common.SeverityDebug, "%s: %d devices", filepath.Base(path), len(more))
		devices = append(devices, more...)
	}
	devices = parser.Dedupe(devices)

	model := dts.BuildModel(devices, ex)

	var buf bytes.Buffer
	if err := dts.NewEmitter(&buf).Emit(model); err != nil {
		return nil, errors.Wrap(err, "render device tree")
	}

	out := cfg.OutputPath
	if out == "" {
		out = filepath.Join(cfg.ExtractDir, DefaultOutputName)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return nil, common.NewErrorMsg(common.ErrSevError, common.ErrOutputWrite, err.Error())
	}

	res := &Result{
		OutputPath: out,
		Lines:      bytes.Count(buf.Bytes(), []byte("\n")),
		Model:      model,
		Devices:    devices,
		Stats:      parser.Stats,
	}
	log.Logf(common.SeverityInfo, "generated %s: %d lines", out, res.Lines)

	if !cfg.Quiet {
		w := cfg.SummaryWriter
		if w == nil {
			w = os.Stderr
		}
		NewSummaryPrinter(w).Print(res)
	}
	return res, nil
}
