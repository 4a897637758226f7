package match3

import (
	"fmt"

	m3 "github.com/vovakirdan/crystal-arcade/internal/match3"
)

const comboBannerTicks = 45

// frame is one timed picture of a resolving move.
type frame struct {
	grid  *m3.Grid
	flash []m3.Position // cells about to be removed
	fresh []m3.Position // cells just spawned
	swap  []m3.Position // the swapped pair
	ticks int
	score int // credited when the frame starts
	chain int
}

// buildFrames turns an accepted outcome into playback frames. before is the
// grid as it looked when the swap was requested.
func buildFrames(before *m3.Grid, out m3.SwapOutcome, swapTicks, stepTicks int) []frame {
	swapped := before.Clone()
	swapped.Swap(out.Request.A, out.Request.B)

	frames := []frame{{
		grid:  swapped,
		swap:  []m3.Position{out.Request.A, out.Request.B},
		ticks: swapTicks,
	}}

	prev := swapped
	for _, step := range out.Steps {
		frames = append(frames,
			frame{
				grid:  prev,
				flash: step.Removed,
				ticks: stepTicks / 2,
				score: step.ScoreDelta,
				chain: step.Depth,
			},
			frame{
				grid:  step.Grid,
				fresh: step.Spawned,
				ticks: stepTicks - stepTicks/2,
			},
		)
		prev = step.Grid
	}
	return frames
}

// playing reports whether a move is being played back.
func (g *Game) playing() bool {
	return g.frames != nil
}

func (g *Game) startPlayback(frames []frame) {
	g.frames = frames
	g.frameIdx = -1
	g.nextFrame()
}

// nextFrame enters the following frame, skipping zero-length ones.
func (g *Game) nextFrame() {
	for {
		g.frameIdx++
		g.frameTicks = 0
		if g.frameIdx >= len(g.frames) {
			g.frames = nil
			g.finishMove()
			return
		}

		f := g.frames[g.frameIdx]
		g.score += f.score
		if f.chain > 1 {
			g.showBanner(fmt.Sprintf("COMBO x%d!", f.chain), comboBannerTicks)
		}
		if f.ticks > 0 {
			return
		}
	}
}

func (g *Game) stepPlayback() {
	g.frameTicks++
	if g.frameTicks >= g.frames[g.frameIdx].ticks {
		g.nextFrame()
	}
}

// currentFrame returns the frame on screen, or nil when idle.
func (g *Game) currentFrame() *frame {
	if !g.playing() {
		return nil
	}
	return &g.frames[g.frameIdx]
}
