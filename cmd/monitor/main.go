package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mwestbrook/prismatic/go-engine/internal/config"
	"github.com/mwestbrook/prismatic/go-engine/internal/extract"
	"github.com/mwestbrook/prismatic/go-engine/internal/gradient"
	"github.com/mwestbrook/prismatic/go-engine/internal/logging"
	"github.com/mwestbrook/prismatic/go-engine/internal/signature"
	"github.com/mwestbrook/prismatic/go-engine/internal/store"
)

// #region main
func main() {
	cfgPath := flag.String("config", envOr("PRISMATIC_CONFIG", ""), "path to engine config YAML")
	dbPath := flag.String("db", envOr("PRISMATIC_DB", "prismatic.db"), "path to signature database")
	lensName := flag.String("lens", "general", "calibration profile to read through")
	label := flag.String("label", "stdin", "label for the new stream")
	horizon := flag.Duration("horizon", 10*time.Second, "forecast horizon")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	registry := cfg.BuildRegistry()
	profile, err := registry.Get(*lensName)
	if err != nil {
		log.Fatalf("unknown lens: %v", err)
	}

	db, err := store.NewStore(*dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer db.Close()

	stream, err := db.CreateStream(*label, profile.Name)
	if err != nil {
		log.Fatalf("failed to create stream: %v", err)
	}

	extractor := extract.NewExtractor()
	computer := signature.NewComputer(cfg.SignatureOptions())
	tracker := gradient.NewTracker(cfg.TrackerOptions())

	fmt.Println("Dimensional Signature Monitor ready.")
	fmt.Printf("  DB: %s | Lens: %s | Stream: %s\n", *dbPath, profile.Name, stream.StreamID)
	fmt.Println("Type a text (or 'quit' to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" {
			break
		}

		features := extractor.Features(text)
		sig, err := computer.Compute(features, profile)
		if err != nil {
			log.Printf("compute error: %v", err)
			continue
		}

		snap := gradient.Snapshot{
			Timestamp: time.Now().UTC(),
			Psi:       sig.Psi,
			Rho:       sig.Rho,
			QRaw:      sig.QRaw,
			QOpt:      sig.QOpt,
			F:         sig.F,
			Tau:       sig.Tau,
		}
		if err := tracker.AddSnapshot(snap); err != nil {
			log.Printf("track error: %v", err)
			continue
		}
		if _, err := db.AppendSnapshot(stream.StreamID, snap); err != nil {
			log.Printf("persist error: %v", err)
		}

		fmt.Printf("psi=%.3f rho=%.3f q_raw=%.3f q_opt=%.3f f=%.3f tau=%.3f\n",
			sig.Psi, sig.Rho, sig.QRaw, sig.QOpt, sig.F, sig.Tau)

		if !tracker.Ready() {
			fmt.Printf("[warming up: %d sample(s)]\n", tracker.Len())
			continue
		}

		pred, err := tracker.PredictTrajectory(*horizon)
		if err != nil {
			log.Printf("forecast error: %v", err)
			continue
		}
		if pred.InterventionRecommended {
			fmt.Printf("[intervention] %s (confidence %.2f)\n", pred.InterventionReason, pred.Confidence)
			entry := logging.InterventionEntry{
				StreamID:   stream.StreamID,
				Horizon:    *horizon,
				ReasonCode: string(pred.InterventionReason.Code),
				Dimension:  pred.InterventionReason.Dimension,
				Threshold:  pred.InterventionReason.Threshold,
				Value:      pred.InterventionReason.Value,
				Confidence: pred.Confidence,
				CreatedAt:  time.Now().UTC(),
			}
			if err := logging.LogIntervention(db.DB(), entry); err != nil {
				log.Printf("logging error: %v", err)
			}
		} else {
			fmt.Printf("[steady] predicted q_opt=%.3f at +%s (confidence %.2f)\n",
				pred.Predicted.QOpt, horizon, pred.Confidence)
		}
	}
}

// #endregion main

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
