package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mwestbrook/prismatic/go-engine/internal/calibration"
	"github.com/mwestbrook/prismatic/go-engine/internal/config"
	"github.com/mwestbrook/prismatic/go-engine/internal/gradient"
	"github.com/mwestbrook/prismatic/go-engine/internal/logging"
	"github.com/mwestbrook/prismatic/go-engine/internal/replay"
	"github.com/mwestbrook/prismatic/go-engine/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to prismatic.db (DB mode)")
	streamID := flag.String("stream", "", "stream to replay (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	cfgPath := flag.String("config", "", "path to engine config YAML (DB mode)")
	horizon := flag.Duration("horizon", 10*time.Second, "forecast horizon (DB mode)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/prismatic.db --stream id")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *streamID, *cfgPath, *horizon)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	profileName := f.Calibration
	if profileName == "" {
		profileName = "general"
	}
	profile, err := calibration.DefaultRegistry().Get(profileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unknown calibration: %v\n", err)
		return 2
	}

	results, err := replay.ReplayFixture(f, profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay failed: %v\n", err)
		return 2
	}

	expected := make(map[string]replay.FixtureExpectedResult, len(f.ExpectedResults))
	for _, e := range f.ExpectedResults {
		expected[e.ObservationID] = e
	}

	return printComparison(results, expected)
}

// printComparison outputs a comparison table and returns the exit code.
func printComparison(results []replay.ReplayResult, expected map[string]replay.FixtureExpectedResult) int {
	fmt.Printf("%-16s| %-18s| %-18s| %s\n", "Observation", "Expected", "Replayed", "Match")
	fmt.Printf("%-16s+%-19s+%-19s+%s\n",
		"----------------", "-------------------", "-------------------", "------")

	matches, total := 0, 0
	for _, r := range results {
		exp, ok := expected[r.ObservationID]
		if !ok {
			continue
		}
		total++

		expStr := outcomeString(exp.Recommended, exp.ReasonCode)
		gotStr := outcomeString(r.Recommended, r.ReasonCode)
		match := "DIFF"
		if expStr == gotStr {
			match = "OK"
			matches++
		}
		fmt.Printf("%-16s| %-18s| %-18s| %s\n", r.ObservationID, expStr, gotStr, match)
	}

	diverge := total - matches
	fmt.Printf("\nSummary: %d total, %d match, %d diverge\n", total, matches, diverge)

	if diverge > 0 {
		return 1
	}
	return 0
}

func outcomeString(recommended bool, reason string) string {
	if !recommended {
		return "steady"
	}
	if reason == "" {
		return "intervene"
	}
	return "intervene:" + reason
}

// #endregion fixture-mode

// #region db-mode

// runDBMode re-runs a persisted stream's snapshots through a fresh tracker
// and checks the recommendation count against the intervention log.
func runDBMode(dbPath, streamID, cfgPath string, horizon time.Duration) int {
	if streamID == "" {
		fmt.Fprintln(os.Stderr, "db mode requires --stream")
		return 2
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 2
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer db.Close()

	records, err := db.ListSnapshots(streamID, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list snapshots: %v\n", err)
		return 2
	}
	if len(records) == 0 {
		fmt.Fprintf(os.Stderr, "no snapshots found for stream %s\n", streamID)
		return 2
	}

	tracker := gradient.NewTracker(cfg.TrackerOptions())
	recommendations := 0

	fmt.Printf("%-28s| %7s| %7s| %s\n", "Observed", "QOpt", "Conf", "Forecast")
	fmt.Printf("%-28s+%-8s+%-8s+%s\n",
		"----------------------------", "--------", "--------", "------------------")

	for _, rec := range records {
		snap := gradient.Snapshot{
			Timestamp: rec.Timestamp,
			Psi:       rec.Psi,
			Rho:       rec.Rho,
			QRaw:      rec.QRaw,
			QOpt:      rec.QOpt,
			F:         rec.F,
			Tau:       rec.Tau,
		}
		if err := tracker.AddSnapshot(snap); err != nil {
			fmt.Fprintf(os.Stderr, "replay snapshot %d: %v\n", rec.ID, err)
			return 2
		}

		ts := rec.Timestamp.Format(time.RFC3339)
		if !tracker.Ready() {
			fmt.Printf("%-28s| %7.3f| %7s| %s\n", ts, rec.QOpt, "-", "warming up")
			continue
		}

		pred, err := tracker.PredictTrajectory(horizon)
		if err != nil {
			fmt.Fprintf(os.Stderr, "forecast at %s: %v\n", ts, err)
			return 2
		}
		outcome := "steady"
		if pred.InterventionRecommended {
			recommendations++
			outcome = "intervene:" + string(pred.InterventionReason.Code)
		}
		fmt.Printf("%-28s| %7.3f| %7.2f| %s\n", ts, rec.QOpt, pred.Confidence, outcome)
	}

	logged, err := logging.ListInterventions(db.DB(), streamID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list interventions: %v\n", err)
		return 2
	}

	fmt.Printf("\nSummary: %d snapshots, %d recommendations replayed, %d logged\n",
		len(records), recommendations, len(logged))

	if recommendations != len(logged) {
		return 1
	}
	return 0
}

// #endregion db-mode
