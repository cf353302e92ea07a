package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/chemlab/internal/experiment"
	"github.com/san-kum/chemlab/internal/export"
)

type exportFormat int

const (
	formatCSV exportFormat = iota
	formatJSON
	formatSVG
)

const (
	svgWidth  = 480
	svgHeight = 480
)

func exportRun(cmd *cobra.Command, registry *experiment.Registry, args []string, format exportFormat) error {
	cfg, err := resolveConfig(cmd, registry, args)
	if err != nil {
		return err
	}
	result, session, err := runHeadless(cmd.Context(), registry, cfg)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case formatCSV:
		err = export.WriteCSV(out, result.Topic, result.Window)
	case formatJSON:
		err = export.WriteJSON(out, result.Topic, result.Window, result.Metrics)
	case formatSVG:
		var svg string
		if plotKey != "" {
			svg = export.SeriesSVG(session.Series(plotKey), svgWidth, svgHeight/2, "#3b82f6")
			if svg == "" {
				return fmt.Errorf("not enough samples of %q to plot", plotKey)
			}
		} else {
			svg = export.SnapshotSVG(session.Snapshot(), svgWidth, svgHeight)
		}
		_, err = io.WriteString(out, svg)
	}
	if err != nil {
		return err
	}
	if outFile != "" {
		fmt.Fprintf(os.Stderr, "exported %d samples to %s\n", len(result.Window), outFile)
	}
	return nil
}

// writeResultFile stores a scenario step as JSON.
func writeResultFile(path string, r *experiment.Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
