package sim

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

// Report aggregates a simulation run.
type Report struct {
	Config  Config
	Results []GameResult
	Elapsed time.Duration

	Games       int
	TotalMoves  int
	MeanScore   float64
	StdScore    float64
	MedianScore float64
	P90Score    float64
	MeanChain   float64
	BestChain   int
	Deadlocks   int
	Exhausted   int
	ChainHist   map[int]int // chain depth -> accepted moves reaching it
}

// NewReport computes the summary statistics for results.
func NewReport(cfg Config, results []GameResult) *Report {
	r := &Report{
		Config:    cfg,
		Results:   results,
		Games:     len(results),
		ChainHist: make(map[int]int),
	}
	if len(results) == 0 {
		return r
	}

	scores := make([]float64, len(results))
	chains := make([]float64, len(results))
	for i, res := range results {
		scores[i] = float64(res.Score)
		chains[i] = float64(res.MaxChain)
		r.TotalMoves += res.Moves
		r.BestChain = max(r.BestChain, res.MaxChain)
		r.Deadlocks += res.Deadlocks
		if res.Exhausted {
			r.Exhausted++
		}
		for depth, n := range res.ChainCount {
			r.ChainHist[depth] += n
		}
	}

	r.MeanScore, r.StdScore = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		r.StdScore = 0
	}
	r.MeanChain = stat.Mean(chains, nil)

	slices.Sort(scores)
	r.MedianScore = stat.Quantile(0.5, stat.Empirical, scores, nil)
	r.P90Score = stat.Quantile(0.9, stat.Empirical, scores, nil)
	return r
}

// Write prints the summary and chain histogram as text tables.
func (r *Report) Write(w io.Writer) error {
	p := message.NewPrinter(language.English)

	ec := r.Config.Engine
	summary := [][2]string{
		{"Board", p.Sprintf("%dx%d, %d colors", ec.Width, ec.Height, ec.Colors)},
		{"Games", p.Sprintf("%d", r.Games)},
		{"Moves", p.Sprintf("%d", r.TotalMoves)},
		{"Mean Score", p.Sprintf("%.1f", r.MeanScore)},
		{"Std Dev", p.Sprintf("%.1f", r.StdScore)},
		{"Median", p.Sprintf("%.0f", r.MedianScore)},
		{"P90", p.Sprintf("%.0f", r.P90Score)},
		{"Mean Chain", p.Sprintf("%.2f", r.MeanChain)},
		{"Best Chain", p.Sprintf("x%d", r.BestChain)},
		{"Deadlocks", p.Sprintf("%d", r.Deadlocks)},
		{"Exhausted", p.Sprintf("%d", r.Exhausted)},
	}
	if r.Elapsed > 0 {
		summary = append(summary, [2]string{"Elapsed", r.Elapsed.Round(time.Millisecond).String()})
	}

	var hist [][2]string
	for _, depth := range slices.Sorted(maps.Keys(r.ChainHist)) {
		n := r.ChainHist[depth]
		share := 0.0
		if r.TotalMoves > 0 {
			share = 100 * float64(n) / float64(r.TotalMoves)
		}
		hist = append(hist, [2]string{fmt.Sprintf("x%d", depth), p.Sprintf("%d (%.1f%%)", n, share)})
	}

	out := fmtTable("Crystal Match Simulation", summary)
	if len(hist) > 0 {
		out += fmtTable("Chain Depth", hist)
	}
	_, err := io.WriteString(w, out)
	return err
}

// fmtTable lays rows out as a two-column box. Widths are measured in
// terminal cells.
func fmtTable(title string, rows [][2]string) string {
	keyW, valW := 0, 0
	for _, row := range rows {
		keyW = max(keyW, runewidth.StringWidth(row[0]))
		valW = max(valW, runewidth.StringWidth(row[1]))
	}
	keyW += 2
	valW += 2

	inner := keyW + valW + 1
	if tw := runewidth.StringWidth(title) + 2; tw > inner {
		valW += tw - inner
		inner = tw
	}

	var b strings.Builder
	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"

	b.WriteString("+" + strings.Repeat("-", inner) + "+\n")
	left := (inner - runewidth.StringWidth(title)) / 2
	b.WriteString("|" + blank(left) + title + blank(inner-left-runewidth.StringWidth(title)) + "|\n")
	b.WriteString(divider)
	for _, row := range rows {
		b.WriteString("| " + runewidth.FillRight(row[0], keyW-2) + " | " + runewidth.FillRight(row[1], valW-2) + " |\n")
	}
	b.WriteString(divider)
	return b.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
