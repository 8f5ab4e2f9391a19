// Package pptx writes PresentationML (.pptx) packages from a small slide
// model: three slide archetypes plus free-form text boxes, rectangles,
// lines and tables.
package pptx

import (
	"math"
	"time"
)

// EMU is an English Metric Unit, the OOXML length unit.
type EMU int64

const (
	EMUPerInch  EMU = 914400
	EMUPerPoint EMU = 12700

	// 16:9 widescreen canvas (13.333in x 7.5in).
	SlideWidth  EMU = 12192000
	SlideHeight EMU = 6858000
)

// Inches converts inches to EMU.
func Inches(v float64) EMU {
	return EMU(math.Round(v * float64(EMUPerInch)))
}

// Layout is a slide archetype. Each archetype has a fixed set of content
// regions; slides pick one by name instead of inspecting layouts at runtime.
type Layout int

const (
	// LayoutTitle has a centered title and a subtitle.
	LayoutTitle Layout = iota
	// LayoutTitleAndBody has a title and a bulleted body region.
	LayoutTitleAndBody
	// LayoutTitleOnly has a title and a free canvas.
	LayoutTitleOnly
)

// Layouts lists every archetype in package order.
var Layouts = []Layout{LayoutTitle, LayoutTitleAndBody, LayoutTitleOnly}

func (l Layout) String() string {
	switch l {
	case LayoutTitle:
		return "Title Slide"
	case LayoutTitleAndBody:
		return "Title and Content"
	case LayoutTitleOnly:
		return "Title Only"
	default:
		return "Unknown"
	}
}

// Color is a six digit RGB hex value such as "1E40AF". Empty means inherit.
type Color string

// Rect is a position and size on the slide.
type Rect struct {
	X, Y, W, H EMU
}

// Align is a paragraph alignment.
type Align string

const (
	AlignLeft   Align = "l"
	AlignCenter Align = "ctr"
	AlignRight  Align = "r"
)

// Run is a span of uniformly formatted text. Zero values inherit.
type Run struct {
	Text  string
	Size  float64 // points
	Bold  bool
	Color Color
	Font  string
}

// Paragraph is one line of text runs.
type Paragraph struct {
	Runs   []Run
	Bullet bool
	Align  Align
	// SpaceAfter is in points.
	SpaceAfter float64
}

// Text returns a single-run paragraph.
func Text(s string, size float64, color Color) Paragraph {
	return Paragraph{Runs: []Run{{Text: s, Size: size, Color: color}}}
}

// Shape is anything that can be drawn on a slide canvas.
type Shape interface {
	shapeKind() string
}

// TextBox is a free text frame.
type TextBox struct {
	Frame      Rect
	Paragraphs []Paragraph
	Wrap       bool
	// Rotation is clockwise, in degrees.
	Rotation float64
	// Middle anchors text vertically centered.
	Middle bool
}

// Rectangle is a filled and/or outlined box.
type Rectangle struct {
	Frame Rect
	Fill  Color
	Line  Color
}

// Line is a straight connector from (Frame.X, Frame.Y) spanning Frame.W by Frame.H.
type Line struct {
	Frame Rect
	Color Color
	Width EMU
}

// Table is a grid of text cells. The first row is the header.
type Table struct {
	Frame      Rect
	Rows       [][]string
	HeaderBold bool
	HeaderFill Color
	FontSize   float64
}

func (TextBox) shapeKind() string   { return "TextBox" }
func (Rectangle) shapeKind() string { return "Rectangle" }
func (Line) shapeKind() string      { return "Line" }
func (Table) shapeKind() string     { return "Table" }

// Slide is one slide. Title is used by every archetype, Subtitle only by
// LayoutTitle and Body only by LayoutTitleAndBody.
type Slide struct {
	Layout   Layout
	Title    string
	Subtitle string
	Body     []string
	Shapes   []Shape
}

// Presentation is an ordered list of slides.
type Presentation struct {
	Title   string
	Author  string
	Created time.Time
	Slides  []Slide
}

// TextBoxes returns every free text box on the slide, in drawing order.
func (s Slide) TextBoxes() []TextBox {
	var out []TextBox
	for _, sh := range s.Shapes {
		if tb, ok := sh.(TextBox); ok {
			out = append(out, tb)
		}
	}
	return out
}

// PlainText joins the runs of every paragraph, one line per paragraph.
func (tb TextBox) PlainText() string {
	var out []byte
	for i, p := range tb.Paragraphs {
		if i > 0 {
			out = append(out, '\n')
		}
		for _, r := range p.Runs {
			out = append(out, r.Text...)
		}
	}
	return string(out)
}
