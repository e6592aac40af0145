package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mwestbrook/prismatic/go-engine/internal/config"
	"github.com/mwestbrook/prismatic/go-engine/internal/extract"
	"github.com/mwestbrook/prismatic/go-engine/internal/lens"
	"github.com/mwestbrook/prismatic/go-engine/internal/signature"
)

// #region main

func main() {
	cfgPath := flag.String("config", envOr("PRISMATIC_CONFIG", ""), "path to engine config YAML")
	lenses := flag.String("lenses", "", "comma-separated lens names (default: all registered)")
	primary := flag.String("primary", "", "classify against this profile's interference baseline")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	text := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(text) == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("read stdin: %v", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(os.Stderr, "usage: lensscan [--config path] [--lenses a,b] [--json] <text>")
		os.Exit(2)
	}

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	registry := cfg.BuildRegistry()

	features := extract.NewExtractor().Features(text)
	computer := signature.NewComputer(cfg.SignatureOptions())

	var readings []lens.Reading
	if *lenses == "" {
		readings, err = lens.ReadAll(computer, features, registry)
		if err != nil {
			log.Fatalf("fan-out failed: %v", err)
		}
	} else {
		for _, name := range strings.Split(*lenses, ",") {
			profile, err := registry.Get(strings.TrimSpace(name))
			if err != nil {
				log.Fatalf("unknown lens: %v", err)
			}
			sig, err := computer.Compute(features, profile)
			if err != nil {
				log.Fatalf("compute under %s: %v", profile.Name, err)
			}
			readings = append(readings, lens.Reading{Calibration: profile.Name, Signature: sig})
		}
	}

	lensOpts := cfg.LensOptions()
	if *primary != "" {
		profile, err := registry.Get(*primary)
		if err != nil {
			log.Fatalf("unknown primary lens: %v", err)
		}
		if profile.InterferenceBaseline > 0 {
			lensOpts.Threshold = profile.InterferenceBaseline
		}
	}

	report, err := lens.NewAnalyzer(lensOpts).CalculateInterference(readings)
	if err != nil {
		log.Fatalf("interference analysis failed: %v", err)
	}

	if *jsonOut {
		printJSON(readings, report)
		return
	}
	printTable(readings, report)
}

// #endregion main

// #region output

type scanOutput struct {
	Readings []readingRow `json:"readings"`
	Lambda   float64      `json:"lambda"`
	Class    string       `json:"classification"`
	Stable   string       `json:"most_stable"`
	Variable string       `json:"most_variable"`
	Lens     string       `json:"recommended_lens"`
}

type readingRow struct {
	Lens string  `json:"lens"`
	Psi  float64 `json:"psi"`
	Rho  float64 `json:"rho"`
	QOpt float64 `json:"q_opt"`
	F    float64 `json:"f"`
	Tau  float64 `json:"tau"`
}

func printJSON(readings []lens.Reading, report lens.Report) {
	out := scanOutput{
		Lambda:   report.Lambda,
		Class:    string(report.Classification),
		Stable:   report.MostStable,
		Variable: report.MostVariable,
		Lens:     report.RecommendedLens,
	}
	for _, r := range readings {
		out.Readings = append(out.Readings, readingRow{
			Lens: r.Calibration,
			Psi:  r.Signature.Psi,
			Rho:  r.Signature.Rho,
			QOpt: r.Signature.QOpt,
			F:    r.Signature.F,
			Tau:  r.Signature.Tau,
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

func printTable(readings []lens.Reading, report lens.Report) {
	fmt.Printf("%-24s  %6s  %6s  %6s  %6s  %6s\n", "Lens", "Psi", "Rho", "QOpt", "F", "Tau")
	fmt.Printf("%-24s+-%6s+-%6s+-%6s+-%6s+-%6s\n",
		strings.Repeat("-", 24), "------", "------", "------", "------", "------")
	for _, r := range readings {
		fmt.Printf("%-24s  %6.3f  %6.3f  %6.3f  %6.3f  %6.3f\n",
			r.Calibration, r.Signature.Psi, r.Signature.Rho, r.Signature.QOpt,
			r.Signature.F, r.Signature.Tau)
	}
	fmt.Println()
	fmt.Printf("lambda=%.4f (threshold %.4f) -> %s\n", report.Lambda, report.Threshold, report.Classification)
	fmt.Printf("most stable dimension:   %s\n", report.MostStable)
	fmt.Printf("most variable dimension: %s\n", report.MostVariable)
	fmt.Printf("recommended lens:        %s\n", report.RecommendedLens)
}

// #endregion output

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
