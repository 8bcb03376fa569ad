package card

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/vovakirdan/pop-arcade/internal/core"
	"github.com/vovakirdan/pop-arcade/internal/games/pop"
	"github.com/vovakirdan/pop-arcade/internal/history"
)

func TestScorecardPNG(t *testing.T) {
	run := Run{
		Mode:          "pro",
		Score:         12345,
		MaxMultiplier: 7.3,
		RankTitle:     "Cooking",
		Comment:       "A long enough comment that the card has to wrap it onto a second line at least.",
		When:          time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC),
		Stats:         &pop.Summary{BestResponseMs: 120, MedianResponseMs: 300, Intervals: []float64{120, 300}},
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, Scorecard(run)); err != nil {
		t.Fatalf("EncodePNG() failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != CardWidth || b.Dy() != CardHeight {
		t.Errorf("card size = %dx%d, want %dx%d", b.Dx(), b.Dy(), CardWidth, CardHeight)
	}
}

func TestFromRecord(t *testing.T) {
	r := history.Record{ID: "x", Timestamp: 1700000000000, Score: 50, Mode: "arcade", MaxMultiplier: 2, RankTitle: "Warm"}
	run := FromRecord(r)
	if run.Score != 50 || run.Mode != "arcade" || run.RankTitle != "Warm" || !run.When.Equal(r.Time()) {
		t.Errorf("FromRecord = %+v", run)
	}
}

func TestBoard(t *testing.T) {
	snap := pop.Snapshot{
		Viewport: pop.Viewport{W: 80, H: 48},
		Diameter: 8,
		Targets: []pop.Target{
			{ID: "a", X: 25, Y: 50, Color: "#EF4444", Shape: pop.ShapeCircle, StackCount: 1},
			{ID: "b", X: 75, Y: 50, Color: "#3B82F6", Shape: pop.ShapeStar, StackCount: 3},
		},
		Panel: &core.Zone{Left: 30, Top: 2, Right: 50, Bottom: 8},
	}

	img, err := Board(snap, 400)
	if err != nil {
		t.Fatalf("Board() failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 240 {
		t.Fatalf("board size = %dx%d, want 400x240", b.Dx(), b.Dy())
	}

	// Target centers are filled with their colors.
	if got := rgbAt(img, 100, 120); got != (color.RGBA{0xEF, 0x44, 0x44, 0xFF}) {
		t.Errorf("circle center = %v", got)
	}
	if got := rgbAt(img, 5, 235); got != paper {
		t.Errorf("background = %v", got)
	}
}

func TestBoardEmptyViewport(t *testing.T) {
	if _, err := Board(pop.Snapshot{}, 100); err == nil {
		t.Error("expected an error for an empty viewport")
	}
}

func TestThumbnailAndSave(t *testing.T) {
	thumb := Thumbnail(Scorecard(Run{Mode: "arcade"}), 160)
	if b := thumb.Bounds(); b.Dx() != 160 || b.Dy() != 90 {
		t.Errorf("thumbnail = %dx%d, want 160x90", b.Dx(), b.Dy())
	}

	path := filepath.Join(t.TempDir(), "thumb.png")
	if err := Save(path, thumb); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	back, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("cannot reopen saved image: %v", err)
	}
	if back.Bounds().Dx() != 160 {
		t.Errorf("reopened width = %d", back.Bounds().Dx())
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   core.Color
		want color.Color
	}{
		{"#22C55E", color.RGBA{0x22, 0xC5, 0x5E, 0xFF}},
		{"208", color.RGBA{0xFF, 0x87, 0x00, 0xFF}},
		{"", muted},
		{"#ZZZZZZ", muted},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.in); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func rgbAt(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}
