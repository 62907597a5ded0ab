package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kvenkat/niftywatch/internal/contracts"
	"github.com/kvenkat/niftywatch/pkg/logger"
)

// ChartWriter renders a close-vs-SMA20 PNG per ticker. It satisfies the
// renderer the screening pipeline plots with.
type ChartWriter struct {
	dir    string
	logger *logger.Logger
}

// NewChartWriter creates a writer that saves charts into dir.
func NewChartWriter(dir string, log *logger.Logger) *ChartWriter {
	return &ChartWriter{
		dir:    dir,
		logger: log.WithField("module", "chart"),
	}
}

// Render writes <dir>/<ticker>.png with the close series and the SMA20
// overlay. SMA warm-up bars carry NaN and are left off the overlay.
func (w *ChartWriter) Render(ticker string, frame *contracts.IndicatorFrame) error {
	if frame.Len() < 2 {
		return fmt.Errorf("not enough bars to chart %s", ticker)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}

	closeX := make([]time.Time, frame.Len())
	closeY := make([]float64, frame.Len())
	for i, bar := range frame.Series {
		closeX[i] = bar.Timestamp
		closeY[i] = bar.Close
	}

	var smaX []time.Time
	var smaY []float64
	for i, v := range frame.SMA20 {
		if math.IsNaN(v) {
			continue
		}
		smaX = append(smaX, frame.Series[i].Timestamp)
		smaY = append(smaY, v)
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    "Close",
			XValues: closeX,
			YValues: closeY,
			Style: chart.Style{
				StrokeColor: drawing.ColorBlue,
				StrokeWidth: 1.5,
			},
		},
	}
	if len(smaY) >= 2 {
		series = append(series, chart.TimeSeries{
			Name:    "SMA 20",
			XValues: smaX,
			YValues: smaY,
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("ff8c00"),
				StrokeWidth: 1.5,
			},
		})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s Close vs SMA 20", ticker),
		Width:  1024,
		Height: 512,
		XAxis:  chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	path := filepath.Join(w.dir, chartFileName(ticker))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render chart %s: %w", ticker, err)
	}

	w.logger.WithField("path", path).Debug("Wrote chart")
	return nil
}

// chartFileName maps a ticker to a safe file name (RELIANCE.NS ->
// RELIANCE_NS.png).
func chartFileName(ticker string) string {
	return strings.ReplaceAll(ticker, ".", "_") + ".png"
}
