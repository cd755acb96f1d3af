package chart

import (
	"bytes"
	"errors"
	"f1q1report/pkg/model"
	"f1q1report/pkg/raceerrors"
	"image/png"
	"testing"
	"time"
)

func TestHeight(t *testing.T) {
	if got := Height(0); got != 2*margin {
		t.Fatalf("expected %d, got %d", 2*margin, got)
	}
	if got := Height(3); got != 2*margin+3*(barHeight+barGap) {
		t.Fatalf("unexpected height %d", got)
	}
}

func TestBarLength(t *testing.T) {
	fastest, slowest := 72*time.Second, 74*time.Second
	if got := BarLength(fastest, fastest, slowest, 500); got != minBar {
		t.Fatalf("fastest lap should get the shortest bar, got %v", got)
	}
	if got := BarLength(slowest, fastest, slowest, 500); got != 500 {
		t.Fatalf("slowest lap should get the longest bar, got %v", got)
	}
	if got := BarLength(73*time.Second, fastest, slowest, 500); got != minBar+(500-minBar)/2 {
		t.Fatalf("unexpected middle bar %v", got)
	}
	if got := BarLength(fastest, fastest, fastest, 500); got != 500 {
		t.Fatalf("equal laps should get full bars, got %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	results := []model.RaceResult{
		{Driver: model.Driver{ID: "FAM"}, LapTime: 72657 * time.Millisecond},
		{Driver: model.Driver{ID: "PGS"}, LapTime: 72941 * time.Millisecond},
		{Driver: model.Driver{ID: "KMH"}, LapTime: 73393 * time.Millisecond},
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != Width || b.Dy() != Height(len(results)) {
		t.Fatalf("unexpected bounds %v", b)
	}
}

func TestDrawEmpty(t *testing.T) {
	if _, err := Draw(nil); !errors.Is(err, raceerrors.ErrDisplayReport) {
		t.Fatalf("expected DisplayReport, got %v", err)
	}
}
