package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mwestbrook/prismatic/go-engine/internal/config"
	"github.com/mwestbrook/prismatic/go-engine/internal/gradient"
	"github.com/mwestbrook/prismatic/go-engine/internal/logging"
	"github.com/mwestbrook/prismatic/go-engine/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to prismatic.db")
	streamID := flag.String("stream", "", "show single stream detail")
	last := flag.Int("last", 20, "show N most recent snapshots in detail mode")
	interventions := flag.Bool("interventions", false, "show the stream's intervention log")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/prismatic.db [--stream id] [--last N] [--interventions] [--json]")
		os.Exit(2)
	}

	db, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if *streamID != "" {
		if err := runDetailMode(db, *streamID, *last, *interventions, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runListMode(db, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type streamRow struct {
	StreamID    string `json:"stream_id"`
	Label       string `json:"label"`
	Calibration string `json:"calibration"`
	Snapshots   int    `json:"snapshots"`
	CreatedAt   string `json:"created_at"`
}

func runListMode(db *store.Store, jsonOut bool) error {
	streams, err := db.ListStreams()
	if err != nil {
		return err
	}
	if len(streams) == 0 {
		fmt.Fprintln(os.Stderr, "no streams found")
		return nil
	}

	rows := make([]streamRow, 0, len(streams))
	for _, s := range streams {
		snaps, err := db.ListSnapshots(s.StreamID, 0)
		if err != nil {
			return err
		}
		rows = append(rows, streamRow{
			StreamID:    s.StreamID,
			Label:       s.Label,
			Calibration: s.Calibration,
			Snapshots:   len(snaps),
			CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-36s  %-16s  %-22s  %9s  %s\n", "Stream", "Label", "Calibration", "Snapshots", "Created")
	for _, r := range rows {
		fmt.Printf("%-36s  %-16s  %-22s  %9d  %s\n",
			r.StreamID, r.Label, r.Calibration, r.Snapshots, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type snapshotRow struct {
	ObservedAt string  `json:"observed_at"`
	Psi        float64 `json:"psi"`
	Rho        float64 `json:"rho"`
	QRaw       float64 `json:"q_raw"`
	QOpt       float64 `json:"q_opt"`
	F          float64 `json:"f"`
	Tau        float64 `json:"tau"`
}

type dimensionRow struct {
	Dimension string  `json:"dimension"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
	Current   float64 `json:"current"`
	Velocity  float64 `json:"velocity"`
	Trend     string  `json:"trend"`
}

type detailOutput struct {
	Stream        streamRow      `json:"stream"`
	Snapshots     []snapshotRow  `json:"snapshots"`
	Dimensions    []dimensionRow `json:"dimensions,omitempty"`
	Interventions []logRow       `json:"interventions,omitempty"`
}

type logRow struct {
	ReasonCode string  `json:"reason_code"`
	Dimension  string  `json:"dimension,omitempty"`
	Threshold  float64 `json:"threshold"`
	Value      float64 `json:"value"`
	Confidence float64 `json:"confidence"`
	CreatedAt  string  `json:"created_at"`
}

func runDetailMode(db *store.Store, streamID string, last int, interventions, jsonOut bool) error {
	stream, err := db.GetStream(streamID)
	if err != nil {
		return err
	}
	snaps, err := db.ListSnapshots(streamID, 0)
	if err != nil {
		return err
	}

	out := detailOutput{
		Stream: streamRow{
			StreamID:    stream.StreamID,
			Label:       stream.Label,
			Calibration: stream.Calibration,
			Snapshots:   len(snaps),
			CreatedAt:   stream.CreatedAt.Format("2006-01-02T15:04:05Z"),
		},
	}

	tail := snaps
	if last > 0 && len(tail) > last {
		tail = tail[len(tail)-last:]
	}
	for _, s := range tail {
		out.Snapshots = append(out.Snapshots, snapshotRow{
			ObservedAt: s.Timestamp.Format(time.RFC3339),
			Psi:        s.Psi,
			Rho:        s.Rho,
			QRaw:       s.QRaw,
			QOpt:       s.QOpt,
			F:          s.F,
			Tau:        s.Tau,
		})
	}

	// Window diagnostics need at least two readings.
	if len(snaps) >= 2 {
		tracker, err := db.LoadTracker(streamID, config.Default().TrackerOptions())
		if err != nil {
			return err
		}
		analysis, err := tracker.AnalyzeHistory()
		if err != nil {
			return err
		}
		for _, name := range gradient.DimensionNames {
			stats := analysis.Dimensions[name]
			out.Dimensions = append(out.Dimensions, dimensionRow{
				Dimension: name,
				Mean:      stats.Mean,
				StdDev:    stats.StdDev,
				Current:   stats.Current,
				Velocity:  stats.Velocity,
				Trend:     string(stats.Trend),
			})
		}
	}

	if interventions {
		entries, err := logging.ListInterventions(db.DB(), streamID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			out.Interventions = append(out.Interventions, logRow{
				ReasonCode: e.ReasonCode,
				Dimension:  e.Dimension,
				Threshold:  e.Threshold,
				Value:      e.Value,
				Confidence: e.Confidence,
				CreatedAt:  e.CreatedAt.Format(time.RFC3339),
			})
		}
	}

	if jsonOut {
		return printJSON(out)
	}
	return printDetail(out)
}

func printDetail(out detailOutput) error {
	fmt.Printf("Stream %s (%s) lens=%s snapshots=%d\n\n",
		out.Stream.StreamID, out.Stream.Label, out.Stream.Calibration, out.Stream.Snapshots)

	fmt.Printf("%-24s  %6s  %6s  %6s  %6s  %6s  %6s\n",
		"Observed", "Psi", "Rho", "QRaw", "QOpt", "F", "Tau")
	for _, s := range out.Snapshots {
		fmt.Printf("%-24s  %6.3f  %6.3f  %6.3f  %6.3f  %6.3f  %6.3f\n",
			s.ObservedAt, s.Psi, s.Rho, s.QRaw, s.QOpt, s.F, s.Tau)
	}

	if len(out.Dimensions) > 0 {
		fmt.Printf("\n%-8s  %7s  %7s  %7s  %9s  %s\n",
			"Dim", "Mean", "StdDev", "Current", "Velocity", "Trend")
		for _, d := range out.Dimensions {
			fmt.Printf("%-8s  %7.3f  %7.3f  %7.3f  %9.4f  %s\n",
				d.Dimension, d.Mean, d.StdDev, d.Current, d.Velocity, d.Trend)
		}
	}

	if len(out.Interventions) > 0 {
		fmt.Printf("\n%-24s  %-14s  %-8s  %8s  %8s  %s\n",
			"Logged", "Reason", "Dim", "Value", "Thresh", "Conf")
		for _, e := range out.Interventions {
			fmt.Printf("%-24s  %-14s  %-8s  %8.3f  %8.3f  %.2f\n",
				e.CreatedAt, e.ReasonCode, e.Dimension, e.Value, e.Threshold, e.Confidence)
		}
	}
	return nil
}

// #endregion detail-mode

// #region helpers

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// #endregion helpers
