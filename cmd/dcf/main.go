package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"dcf_lite/pkg/core/assumption"
	"dcf_lite/pkg/core/config"
	"dcf_lite/pkg/core/ingest"
	"dcf_lite/pkg/core/report"
	"dcf_lite/pkg/core/valuation"
)

func main() {
	mode := flag.String("mode", "value", "Mode: value, sensitivity, parse or export")
	in := flag.String("in", "", "Assumption file (JSON or Hjson); for parse mode, a pasted table")
	dataStr := flag.String("data", "", "Inline assumption payload")
	out := flag.String("out", "", "Output path for export mode (.xlsx, .html or .md)")
	years := flag.Int("years", 0, "Projection years (defaults to config)")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if *years > 0 {
		cfg.Projection.Years = *years
	}

	if *mode == "parse" {
		if err := runParse(*in, *dataStr); err != nil {
			logger.WithError(err).Fatal("parse failed")
		}
		return
	}

	a, err := loadAssumptions(*in, *dataStr)
	if err != nil {
		logger.WithError(err).Fatal("invalid assumptions")
	}

	switch *mode {
	case "value":
		an, err := valuation.Analyze(a, valuation.Options{Years: cfg.Projection.Years, SensitivitySteps: cfg.Sensitivity.Steps})
		if err != nil {
			logger.WithError(err).Fatal("valuation failed")
		}
		if err := printJSON(os.Stdout, an); err != nil {
			logger.WithError(err).Fatal("failed to write analysis")
		}
	case "sensitivity":
		grid, err := valuation.BuildSensitivity(a, cfg.Projection.Years, cfg.Sensitivity.Steps)
		if err != nil {
			logger.WithError(err).Fatal("sensitivity failed")
		}
		printGrid(os.Stdout, grid)
	case "export":
		an, err := valuation.Analyze(a, valuation.Options{Years: cfg.Projection.Years, SensitivitySteps: cfg.Sensitivity.Steps})
		if err != nil {
			logger.WithError(err).Fatal("valuation failed")
		}
		path := *out
		if path == "" {
			path = report.FileName(cfg.Export.FilePrefix, time.Now())
		}
		if err := export(path, an, report.Options{Creator: cfg.Export.Creator, FilePrefix: cfg.Export.FilePrefix}); err != nil {
			logger.WithError(err).Fatal("export failed")
		}
		logger.WithFields(logrus.Fields{"path": path, "run_id": an.RunID}).Info("report written")
	default:
		logger.Fatalf("unknown mode: %s", *mode)
	}
}

func loadAssumptions(path, inline string) (assumption.AssumptionSet, error) {
	if path != "" {
		return assumption.LoadFile(path)
	}
	if inline == "" {
		return assumption.Default(), nil
	}
	a, err := assumption.Decode([]byte(inline))
	if err != nil {
		return a, err
	}
	return a, a.Validate()
}

func runParse(path, inline string) error {
	text := inline
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		text = string(data)
	}
	grid := ingest.ParseClipboard(text)
	return printJSON(os.Stdout, map[string]interface{}{
		"rows":   len(grid),
		"grid":   grid,
		"fields": assumption.PrefilledFields(grid),
	})
}

func export(path string, an *valuation.Analysis, opts report.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".md":
		_, err = io.WriteString(f, report.Markdown(an))
	case ".html":
		var html string
		if html, err = report.HTML(an); err == nil {
			_, err = io.WriteString(f, html)
		}
	default:
		err = report.WriteXLSX(f, an, opts)
	}
	return err
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printGrid(w io.Writer, s valuation.Sensitivity) {
	fmt.Fprintf(w, "%-22s", s.Corner())
	for _, g := range s.GrowthRates {
		fmt.Fprintf(w, "%10.2f%%", g*100)
	}
	fmt.Fprintln(w)
	for i, r := range s.DiscountRates {
		fmt.Fprintf(w, "%-22s", fmt.Sprintf("%.2f%%", r*100))
		for j, p := range s.Prices[i] {
			if !s.Valid[i][j] {
				fmt.Fprintf(w, "%11s", "n/a")
				continue
			}
			mark := " "
			if i == s.BaseRow && j == s.BaseCol {
				mark = "*"
			}
			fmt.Fprintf(w, "%10.2f%s", p, mark)
		}
		fmt.Fprintln(w)
	}
}
