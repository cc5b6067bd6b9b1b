// Package report turns the metrics of a finished run into a self-describing
// JSON document for plotting tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-boids-seeker/pkg/simulation"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Summary condenses a metrics series.
type Summary struct {
	Frames                 int     `json:"frames"`
	FinalAverageDistance   float64 `json:"finalAverageDistance"`
	MinimumAverageDistance float64 `json:"minimumAverageDistance"`
	TotalCollisions        int     `json:"totalCollisions"`
	PeakCollisions         int     `json:"peakCollisions"`
}

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.NewString()
}

// Summarize computes the Summary of frames. An empty series gives a zero Summary.
func Summarize(frames []simulation.FrameMetrics) Summary {
	s := Summary{Frames: len(frames)}
	if len(frames) == 0 {
		return s
	}
	s.MinimumAverageDistance = math.Inf(1)
	for _, f := range frames {
		s.TotalCollisions += f.Collisions
		s.PeakCollisions = max(s.PeakCollisions, f.Collisions)
		s.MinimumAverageDistance = math.Min(s.MinimumAverageDistance, f.AverageDistance)
	}
	s.FinalAverageDistance = frames[len(frames)-1].AverageDistance
	return s
}

// Build assembles the report envelope: run id, generation time, the
// configuration echo, a summary and the per-frame series in frame order.
func Build(runID string, cfg simulation.Config, frames []simulation.FrameMetrics, generatedAt time.Time) (*structpb.Struct, error) {
	config, err := toMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	summary, err := toMap(Summarize(frames))
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}

	series := make([]interface{}, len(frames))
	for i, f := range frames {
		series[i] = map[string]interface{}{
			"frame":           f.Frame,
			"targetX":         f.Target.X,
			"targetY":         f.Target.Y,
			"averageDistance": f.AverageDistance,
			"collisions":      f.Collisions,
		}
	}

	s, err := structpb.NewStruct(map[string]interface{}{
		"runId":       runID,
		"generatedAt": generatedAt.UTC().Format(time.RFC3339),
		"config":      config,
		"summary":     summary,
		"frames":      series,
	})
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	return s, nil
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, report *structpb.Struct) error {
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteFile writes the report to path, replacing any previous file.
func WriteFile(path string, report *structpb.Struct) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()
	if err := WriteJSON(f, report); err != nil {
		return err
	}
	return f.Close()
}

// toMap goes through encoding/json so the field names match the config file keys.
func toMap(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
