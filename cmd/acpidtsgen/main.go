package main

import (
	"flag"
	"fmt"
	"os"

	"acpidts/internal/gen"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	quiet := flag.Bool("quiet", false, "Suppress the completion summary")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <extraction-dir> [output.dts]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := gen.Config{
		ExtractDir: flag.Arg(0),
		OutputPath: flag.Arg(1),
		Verbose:    *verbose,
		Quiet:      *quiet,
	}

	if _, err := gen.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
