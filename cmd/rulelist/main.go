// Command rulelist extracts an ordered decision list from a trained tree
// ensemble and a labeled training dataset.
//
// Usage:
//
//	rulelist -forest model.json -data train.csv [-config rulelist.yaml] [-out dir]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/vanderheijden86/rulelist/internal/datasource"
	"github.com/vanderheijden86/rulelist/pkg/config"
	"github.com/vanderheijden86/rulelist/pkg/export"
	"github.com/vanderheijden86/rulelist/pkg/extraction"
	"github.com/vanderheijden86/rulelist/pkg/model"
)

func main() {
	forestPath := flag.String("forest", "", "Forest JSON file (required)")
	dataPath := flag.String("data", "", "Labeled dataset, CSV or SQLite (required)")
	configPath := flag.String("config", "", "Optional YAML settings file")
	outDir := flag.String("out", "", "Output directory (overrides config)")
	formats := flag.String("formats", "", "Comma-separated export formats: json,markdown,sqlite (overrides config)")
	seed := flag.Int64("seed", 0, "Tie-break RNG seed (overrides config)")
	profile := flag.Bool("profile", false, "Print per-phase timings to stderr")
	flag.Parse()

	if *forestPath == "" || *dataPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*forestPath, *dataPath, *configPath, *outDir, *formats, *seed, *profile); err != nil {
		fmt.Fprintf(os.Stderr, "rulelist: %v\n", err)
		os.Exit(1)
	}
}

func run(forestPath, dataPath, configPath, outDir, formats string, seed int64, profile bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := config.DefaultSettings()
	if configPath != "" {
		var err error
		settings, err = config.LoadFrom(configPath)
		if err != nil {
			return err
		}
	}
	if outDir != "" {
		settings.OutputDir = outDir
	}
	if formats != "" {
		settings.Export = strings.Split(formats, ",")
	}
	cfg := settings.PipelineConfig()
	if seed != 0 {
		cfg.RNGSeed = seed
	}

	f, err := os.Open(forestPath)
	if err != nil {
		return fmt.Errorf("opening forest: %w", err)
	}
	forest, err := model.DecodeForest(f)
	f.Close()
	if err != nil {
		return err
	}

	ds, labels, err := datasource.Load(dataPath)
	if err != nil {
		return err
	}

	dl, prof, err := extraction.ExtractWithProfile(ctx, forest, ds, labels, cfg)
	if err != nil {
		return err
	}
	if profile {
		fmt.Fprintf(os.Stderr, "harvest %v (%d rules), prune %v (%d), select %v (%d), cover %v (%d emitted), total %v\n",
			prof.Harvest, prof.Harvested, prof.Prune, prof.Pruned,
			prof.Select, prof.Selected, prof.Cover, prof.Emitted, prof.Total)
	}

	doc := export.BuildDocument(dl, ds, labels)
	if err := os.MkdirAll(settings.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	for _, format := range settings.Export {
		switch strings.TrimSpace(strings.ToLower(format)) {
		case "json":
			err = export.SaveJSON(filepath.Join(settings.OutputDir, "decision_list.json"), doc)
		case "markdown":
			err = export.SaveMarkdown(filepath.Join(settings.OutputDir, "decision_list.md"), doc)
		case "sqlite":
			err = export.SaveSQLite(filepath.Join(settings.OutputDir, "decision_list.sqlite3"), doc)
		default:
			err = fmt.Errorf("unknown export format %q", format)
		}
		if err != nil {
			return err
		}
	}

	fmt.Printf("extracted %d rules (default %q), accuracy %.4f vs baseline %.4f\n",
		dl.Len(), dl.Default, doc.Accuracy, doc.Baseline)
	return nil
}
