package deck

import (
	"stratiq-api/pkg/analysis"
	"stratiq-api/pkg/deck/pptx"
)

const (
	sizeBody   = 14
	sizeBullet = sizeBody + 3
	sizeMono   = 10
	sizeLabel  = 11
	sizeLegend = 12
	sizeTable  = 12

	colorPrimary pptx.Color = "1E40AF"
	colorDark    pptx.Color = "111827"
	colorMed     pptx.Color = "4B5563"
	colorLight   pptx.Color = "E5E7EB"
	colorWhite   pptx.Color = "FFFFFF"

	monoFont = "Courier New"
)

var (
	slideW = pptx.SlideWidth
	slideH = pptx.SlideHeight
	margin = pptx.Inches(0.8)

	// Recommendation boxes sit this far inside their quadrant.
	recInset = pptx.Inches(0.12)
	recRowH  = pptx.Inches(0.5)

	// A new box whose corner is within recTolerance of a placed one moves below it.
	recTolerance pptx.EMU = 1
)

// grid draws a bordered 2x2 grid and returns its quadrants as
// top-left, top-right, bottom-left, bottom-right.
func grid(frame pptx.Rect) ([]pptx.Shape, [4]pptx.Rect) {
	halfW, halfH := frame.W/2, frame.H/2
	shapes := []pptx.Shape{
		pptx.Rectangle{Frame: frame, Fill: colorWhite, Line: colorMed},
		pptx.Line{Frame: pptx.Rect{X: frame.X + halfW, Y: frame.Y, H: frame.H}, Color: colorLight},
		pptx.Line{Frame: pptx.Rect{X: frame.X, Y: frame.Y + halfH, W: frame.W}, Color: colorLight},
	}
	quads := [4]pptx.Rect{
		{X: frame.X, Y: frame.Y, W: halfW, H: halfH},
		{X: frame.X + halfW, Y: frame.Y, W: halfW, H: halfH},
		{X: frame.X, Y: frame.Y + halfH, W: halfW, H: halfH},
		{X: frame.X + halfW, Y: frame.Y + halfH, W: halfW, H: halfH},
	}
	return shapes, quads
}

func textBox(frame pptx.Rect, text string, size float64, bold bool, color pptx.Color) pptx.TextBox {
	return pptx.TextBox{
		Frame:      frame,
		Wrap:       true,
		Paragraphs: []pptx.Paragraph{{Runs: []pptx.Run{{Text: text, Size: size, Bold: bold, Color: color}}}},
	}
}

func bulletBox(frame pptx.Rect, items []string) pptx.TextBox {
	tb := pptx.TextBox{Frame: frame, Wrap: true}
	for _, it := range items {
		tb.Paragraphs = append(tb.Paragraphs, pptx.Paragraph{
			Bullet:     true,
			SpaceAfter: 6,
			Runs:       []pptx.Run{{Text: it, Size: sizeBullet, Color: colorDark}},
		})
	}
	return tb
}

func smallLabel(text string, x, y pptx.EMU, rotation float64) pptx.TextBox {
	return pptx.TextBox{
		Frame:      pptx.Rect{X: x, Y: y, W: pptx.Inches(2), H: pptx.Inches(0.3)},
		Rotation:   rotation,
		Middle:     true,
		Paragraphs: []pptx.Paragraph{pptx.Text(text, sizeLabel, colorMed)},
	}
}

// Placement is where a recommendation lands on the impact/effort grid.
type Placement struct {
	Index    int // 1-based
	Rec      analysis.Recommendation
	Quadrant analysis.Quadrant
	Frame    pptx.Rect
}

// placeRecommendations assigns each recommendation a box. Boxes start at
// the quadrant origin plus an inset; previously placed boxes are scanned in
// order and any whose top-left is within tolerance of the candidate pushes
// it down to that box's top plus one row height.
func placeRecommendations(recs []analysis.Recommendation, quads [4]pptx.Rect) []Placement {
	out := make([]Placement, 0, len(recs))
	for i, rec := range recs {
		q := rec.Quadrant()
		quad := quads[q]
		frame := pptx.Rect{
			X: quad.X + recInset,
			Y: quad.Y + recInset,
			W: quad.W - 2*recInset,
			H: recRowH,
		}
		for _, placed := range out {
			if abs(frame.X-placed.Frame.X) <= recTolerance && abs(frame.Y-placed.Frame.Y) <= recTolerance {
				frame.Y = placed.Frame.Y + recRowH
			}
		}
		out = append(out, Placement{Index: i + 1, Rec: rec, Quadrant: q, Frame: frame})
	}
	return out
}

func abs(v pptx.EMU) pptx.EMU {
	if v < 0 {
		return -v
	}
	return v
}
