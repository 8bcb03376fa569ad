// Package card renders shareable PNG images: a scorecard for a finished run
// and a snapshot of the board.
package card

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/pop-arcade/internal/core"
	"github.com/vovakirdan/pop-arcade/internal/games/pop"
	"github.com/vovakirdan/pop-arcade/internal/history"
)

// Scorecard size in pixels.
const (
	CardWidth  = 640
	CardHeight = 360
)

// Run is what a scorecard shows.
type Run struct {
	Mode          string
	Score         int
	MaxMultiplier float64
	RankTitle     string
	Comment       string
	When          time.Time
	Stats         *pop.Summary // Optional; adds response times
}

// FromRecord builds a Run from a saved history record.
func FromRecord(r history.Record) Run {
	return Run{
		Mode:          r.Mode,
		Score:         r.Score,
		MaxMultiplier: r.MaxMultiplier,
		RankTitle:     r.RankTitle,
		When:          r.Time(),
	}
}

var (
	paper = color.RGBA{0xFE, 0xF9, 0xE7, 0xFF}
	ink   = color.RGBA{0x11, 0x11, 0x11, 0xFF}
	muted = color.RGBA{0x6B, 0x72, 0x80, 0xFF}
	hot   = color.RGBA{0xEF, 0x44, 0x44, 0xFF}
)

// Scorecard draws the card for a run.
func Scorecard(run Run) image.Image {
	dc := gg.NewContext(CardWidth, CardHeight)
	dc.SetColor(paper)
	dc.Clear()

	// Comic frame with a hard shadow.
	dc.SetColor(ink)
	dc.DrawRectangle(14, 14, CardWidth-20, CardHeight-20)
	dc.Fill()
	dc.SetColor(paper)
	dc.DrawRectangle(8, 8, CardWidth-20, CardHeight-20)
	dc.Fill()
	dc.SetColor(ink)
	dc.SetLineWidth(4)
	dc.DrawRectangle(8, 8, CardWidth-20, CardHeight-20)
	dc.Stroke()

	dc.SetFontFace(basicfont.Face7x13)

	text(dc, "POP-A-LOT", 32, 48, 3, hot)
	text(dc, strings.ToUpper(run.Mode)+" MODE", 34, 74, 1.5, muted)

	text(dc, strconv.Itoa(run.Score), 32, 170, 6, ink)
	text(dc, "POINTS", 36, 196, 1.5, muted)

	text(dc, fmt.Sprintf("PEAK x%.1f", run.MaxMultiplier), 360, 130, 2, ink)
	if run.Stats != nil && len(run.Stats.Intervals) > 0 {
		text(dc, fmt.Sprintf("BEST  %dms", int(math.Round(run.Stats.BestResponseMs))), 360, 160, 1.5, muted)
		text(dc, fmt.Sprintf("MEDIAN %dms", int(math.Round(run.Stats.MedianResponseMs))), 360, 182, 1.5, muted)
	}

	if run.RankTitle != "" {
		text(dc, run.RankTitle, 32, 250, 2.5, hot)
	}
	if run.Comment != "" {
		wrapped(dc, run.Comment, 34, 278, 1.3, CardWidth-80, ink)
	}
	if !run.When.IsZero() {
		text(dc, history.FormatWhen(run.When, time.Now()), 32, CardHeight-30, 1.3, muted)
	}
	return dc.Image()
}

// text draws s with its baseline at (x, y), scaled from the bitmap font.
func text(dc *gg.Context, s string, x, y, scale float64, c color.Color) {
	dc.Push()
	dc.SetColor(c)
	dc.Translate(x, y)
	dc.Scale(scale, scale)
	dc.DrawString(s, 0, 0)
	dc.Pop()
}

func wrapped(dc *gg.Context, s string, x, y, scale, width float64, c color.Color) {
	dc.Push()
	dc.SetColor(c)
	dc.Translate(x, y)
	dc.Scale(scale, scale)
	lines := dc.WordWrap(s, width/scale)
	for i, line := range lines {
		if i == 3 {
			break
		}
		dc.DrawString(line, 0, float64(i)*16)
	}
	dc.Pop()
}

var errEmptyBoard = errors.New("card: cannot draw an empty board")

// Board draws the targets of a snapshot on a canvas width pixels wide,
// keeping the viewport's aspect ratio. The route panel is drawn when set.
func Board(snap pop.Snapshot, width int) (image.Image, error) {
	vp := snap.Viewport
	if vp.Empty() {
		return nil, errEmptyBoard
	}
	if width <= 0 {
		width = 800
	}
	scale := float64(width) / vp.W
	height := int(math.Ceil(vp.H * scale))

	dc := gg.NewContext(width, height)
	dc.SetColor(paper)
	dc.Clear()
	dc.Scale(scale, scale)

	if snap.Panel != nil {
		p := snap.Panel
		dc.SetRGBA(0, 0, 0, 0.08)
		dc.DrawRectangle(p.Left, p.Top, p.Right-p.Left, p.Bottom-p.Top)
		dc.Fill()
	}

	radius := snap.Diameter / 2
	dc.SetFontFace(basicfont.Face7x13)
	for _, t := range snap.Targets {
		c := t.Center(vp)
		drawShape(dc, t.Shape, c, radius)
		dc.SetColor(ParseColor(t.Color))
		dc.FillPreserve()
		dc.SetColor(ink)
		dc.SetLineWidth(math.Max(radius*scale*0.12, 1)) // pixels, not units
		dc.Stroke()

		if t.StackCount > 1 {
			dc.Push()
			dc.SetColor(ink)
			dc.Translate(c.X, c.Y)
			s := radius / 10
			dc.Scale(s, s)
			dc.DrawStringAnchored("x"+strconv.Itoa(t.StackCount), 0, 0, 0.5, 0.35)
			dc.Pop()
		}
	}
	return dc.Image(), nil
}

func drawShape(dc *gg.Context, s pop.Shape, c core.Point, r float64) {
	verts := s.Vertices()
	if len(verts) == 0 {
		dc.DrawCircle(c.X, c.Y, r)
		return
	}
	dc.NewSubPath()
	for i, v := range verts {
		x, y := c.X+v.X*r, c.Y+v.Y*r
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

// Thumbnail scales img down to fit within size x size.
func Thumbnail(img image.Image, size int) image.Image {
	return imaging.Fit(img, size, size, imaging.Lanczos)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("card: cannot encode png: %w", err)
	}
	return nil
}

// Save writes img to path; the format follows the extension.
func Save(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("card: cannot save %s: %w", path, err)
	}
	return nil
}

// ansi maps the palette indexes used by the HUD to RGB.
var ansi = map[string]color.RGBA{
	"1":   {0xCD, 0x31, 0x31, 0xFF},
	"2":   {0x0D, 0xBC, 0x79, 0xFF},
	"3":   {0xE5, 0xE5, 0x10, 0xFF},
	"4":   {0x24, 0x72, 0xC8, 0xFF},
	"5":   {0xBC, 0x3F, 0xBC, 0xFF},
	"6":   {0x11, 0xA8, 0xCD, 0xFF},
	"7":   {0xE5, 0xE5, 0xE5, 0xFF},
	"15":  {0xFF, 0xFF, 0xFF, 0xFF},
	"208": {0xFF, 0x87, 0x00, 0xFF},
	"245": {0x8A, 0x8A, 0x8A, 0xFF},
}

// ParseColor converts a cell color to RGB. Unknown values are gray.
func ParseColor(c core.Color) color.Color {
	s := string(c)
	if rgb, ok := ansi[s]; ok {
		return rgb
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xFF}
		}
	}
	return muted
}
