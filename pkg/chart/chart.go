// Package chart draws the lap times of a report as horizontal bars.
package chart

import (
	"f1q1report/pkg/display"
	"f1q1report/pkg/model"
	"f1q1report/pkg/raceerrors"
	"image"
	"image/color"
	"image/png"
	"io"
	"time"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
)

const (
	Width     = 600
	barHeight = 16
	barGap    = 6
	margin    = 20
	minBar    = 40
)

var (
	background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	q2Color    = color.RGBA{0xe1, 0x06, 0x00, 0xff}
	outColor   = color.RGBA{0x88, 0x88, 0x88, 0xff}
	cutColor   = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

// Height returns the image height for n bars.
func Height(n int) int {
	return 2*margin + n*(barHeight+barGap)
}

// BarLength maps a lap time onto [minBar, maxBar] between the fastest and
// slowest lap of the chart.
func BarLength(lap, fastest, slowest time.Duration, maxBar float64) float64 {
	if slowest <= fastest {
		return maxBar
	}
	f := float64(lap-fastest) / float64(slowest-fastest)
	return minBar + f*(maxBar-minBar)
}

// Draw renders one bar per result, in the given order. Bars past the Q1
// cutoff are grey and a line marks the cutoff.
func Draw(results []model.RaceResult) (*image.RGBA, error) {
	if len(results) == 0 {
		return nil, raceerrors.DisplayReport("failed during drawing race results: nothing to display")
	}

	fastest, slowest := results[0].LapTime, results[0].LapTime
	for _, r := range results {
		if r.LapTime < fastest {
			fastest = r.LapTime
		}
		if r.LapTime > slowest {
			slowest = r.LapTime
		}
	}

	rect := image.Rect(0, 0, Width, Height(len(results)))
	dest := image.NewRGBA(rect)
	gc := draw2dimg.NewGraphicContext(dest)

	gc.SetFillColor(background)
	draw2dkit.Rectangle(gc, 0, 0, float64(rect.Max.X), float64(rect.Max.Y))
	gc.Fill()

	maxBar := float64(Width - 2*margin)
	for i, r := range results {
		y := float64(margin + i*(barHeight+barGap))
		length := BarLength(r.LapTime, fastest, slowest, maxBar)

		gc.BeginPath()
		if i < display.Q1Cutoff {
			gc.SetFillColor(q2Color)
		} else {
			gc.SetFillColor(outColor)
		}
		draw2dkit.Rectangle(gc, margin, y, margin+length, y+barHeight)
		gc.Fill()

		if i+1 == display.Q1Cutoff && i < len(results)-1 {
			lineY := y + barHeight + barGap/2
			gc.BeginPath()
			gc.SetStrokeColor(cutColor)
			gc.SetLineWidth(1)
			gc.MoveTo(margin/2, lineY)
			gc.LineTo(float64(Width-margin/2), lineY)
			gc.Stroke()
		}
	}
	return dest, nil
}

func WritePNG(w io.Writer, results []model.RaceResult) error {
	img, err := Draw(results)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
