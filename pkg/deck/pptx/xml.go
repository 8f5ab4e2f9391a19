package pptx

import (
	"encoding/xml"
	"fmt"
	"math"
	"strings"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

	nsA = `http://schemas.openxmlformats.org/drawingml/2006/main`
	nsR = `http://schemas.openxmlformats.org/officeDocument/2006/relationships`
	nsP = `http://schemas.openxmlformats.org/presentationml/2006/main`

	pmlNamespaces = `xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"`

	tableBorder Color = "9CA3AF"
)

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// spTree accumulates shapes and hands out unique shape ids.
type spTree struct {
	b      strings.Builder
	nextID int
}

func newSpTree() *spTree {
	t := &spTree{nextID: 2}
	t.b.WriteString(`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	t.b.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	return t
}

func (t *spTree) id() int {
	id := t.nextID
	t.nextID++
	return id
}

func (t *spTree) close() string {
	t.b.WriteString(`</p:spTree>`)
	return t.b.String()
}

func xfrm(prefix string, r Rect, rotation float64) string {
	rot := ""
	if rotation != 0 {
		deg := math.Mod(rotation, 360)
		if deg < 0 {
			deg += 360
		}
		rot = fmt.Sprintf(` rot="%d"`, int64(math.Round(deg*60000)))
	}
	return fmt.Sprintf(`<%s:xfrm%s><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></%s:xfrm>`,
		prefix, rot, r.X, r.Y, r.W, r.H, prefix)
}

func solidFill(c Color) string {
	return `<a:solidFill><a:srgbClr val="` + string(c) + `"/></a:solidFill>`
}

func runXML(r Run) string {
	var b strings.Builder
	b.WriteString(`<a:r><a:rPr lang="en-US"`)
	if r.Size > 0 {
		fmt.Fprintf(&b, ` sz="%d"`, int(math.Round(r.Size*100)))
	}
	if r.Bold {
		b.WriteString(` b="1"`)
	}
	b.WriteString(` dirty="0"`)
	if r.Color == "" && r.Font == "" {
		b.WriteString(`/>`)
	} else {
		b.WriteString(`>`)
		if r.Color != "" {
			b.WriteString(solidFill(r.Color))
		}
		if r.Font != "" {
			fmt.Fprintf(&b, `<a:latin typeface="%s"/><a:cs typeface="%s"/>`, esc(r.Font), esc(r.Font))
		}
		b.WriteString(`</a:rPr>`)
	}
	b.WriteString(`<a:t>`)
	b.WriteString(esc(r.Text))
	b.WriteString(`</a:t></a:r>`)
	return b.String()
}

func paragraphXML(p Paragraph) string {
	var b strings.Builder
	b.WriteString(`<a:p>`)
	var attrs, children string
	if p.Bullet {
		attrs += ` marL="285750" indent="-285750"`
	}
	if p.Align != "" {
		attrs += ` algn="` + string(p.Align) + `"`
	}
	if p.SpaceAfter > 0 {
		children += fmt.Sprintf(`<a:spcAft><a:spcPts val="%d"/></a:spcAft>`, int(math.Round(p.SpaceAfter*100)))
	}
	if p.Bullet {
		children += `<a:buFont typeface="Arial"/><a:buChar char="•"/>`
	}
	if attrs != "" || children != "" {
		b.WriteString(`<a:pPr` + attrs)
		if children == "" {
			b.WriteString(`/>`)
		} else {
			b.WriteString(`>` + children + `</a:pPr>`)
		}
	}
	for _, r := range p.Runs {
		b.WriteString(runXML(r))
	}
	if len(p.Runs) == 0 {
		b.WriteString(`<a:endParaRPr lang="en-US" dirty="0"/>`)
	}
	b.WriteString(`</a:p>`)
	return b.String()
}

func paragraphsXML(ps []Paragraph) string {
	if len(ps) == 0 {
		return paragraphXML(Paragraph{})
	}
	var b strings.Builder
	for _, p := range ps {
		b.WriteString(paragraphXML(p))
	}
	return b.String()
}

// placeholder writes a layout-bound text shape. phAttrs selects the
// placeholder on the layout, e.g. `type="title"`.
func (t *spTree) placeholder(name, phAttrs string, frame Rect, paragraphs []Paragraph) {
	id := t.id()
	fmt.Fprintf(&t.b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s %d"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph %s/></p:nvPr></p:nvSpPr>`,
		id, name, id-1, phAttrs)
	t.b.WriteString(`<p:spPr>` + xfrm("a", frame, 0) + `</p:spPr>`)
	t.b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>` + paragraphsXML(paragraphs) + `</p:txBody></p:sp>`)
}

func (t *spTree) textBox(tb TextBox) {
	id := t.id()
	fmt.Fprintf(&t.b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id-1)
	t.b.WriteString(`<p:spPr>` + xfrm("a", tb.Frame, tb.Rotation) + `<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	wrap := "none"
	if tb.Wrap {
		wrap = "square"
	}
	anchor := "t"
	if tb.Middle {
		anchor = "ctr"
	}
	fmt.Fprintf(&t.b, `<p:txBody><a:bodyPr wrap="%s" rtlCol="0" anchor="%s"><a:noAutofit/></a:bodyPr><a:lstStyle/>`, wrap, anchor)
	t.b.WriteString(paragraphsXML(tb.Paragraphs))
	t.b.WriteString(`</p:txBody></p:sp>`)
}

func (t *spTree) rectangle(r Rectangle) {
	id := t.id()
	fmt.Fprintf(&t.b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Rectangle %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`, id, id-1)
	t.b.WriteString(`<p:spPr>` + xfrm("a", r.Frame, 0) + `<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	if r.Fill != "" {
		t.b.WriteString(solidFill(r.Fill))
	} else {
		t.b.WriteString(`<a:noFill/>`)
	}
	if r.Line != "" {
		t.b.WriteString(`<a:ln w="12700">` + solidFill(r.Line) + `</a:ln>`)
	} else {
		t.b.WriteString(`<a:ln><a:noFill/></a:ln>`)
	}
	t.b.WriteString(`</p:spPr></p:sp>`)
}

func (t *spTree) line(l Line) {
	id := t.id()
	width := l.Width
	if width == 0 {
		width = EMUPerPoint
	}
	color := l.Color
	if color == "" {
		color = "000000"
	}
	fmt.Fprintf(&t.b, `<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="%d" name="Connector %d"/><p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr>`, id, id-1)
	t.b.WriteString(`<p:spPr>` + xfrm("a", l.Frame, 0) + `<a:prstGeom prst="line"><a:avLst/></a:prstGeom>`)
	fmt.Fprintf(&t.b, `<a:ln w="%d">%s</a:ln></p:spPr></p:cxnSp>`, width, solidFill(color))
}

func (t *spTree) table(tbl Table) error {
	if len(tbl.Rows) == 0 {
		return fmt.Errorf("pptx: table has no rows")
	}
	cols := len(tbl.Rows[0])
	if cols == 0 {
		return fmt.Errorf("pptx: table has no columns")
	}
	for i, row := range tbl.Rows {
		if len(row) != cols {
			return fmt.Errorf("pptx: table row %d has %d cells, want %d", i, len(row), cols)
		}
	}

	id := t.id()
	fmt.Fprintf(&t.b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Table %d"/><p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>`, id, id-1)
	t.b.WriteString(xfrm("p", tbl.Frame, 0))
	t.b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblPr firstRow="1" bandRow="1"/><a:tblGrid>`)
	colW := tbl.Frame.W / EMU(cols)
	for i := 0; i < cols; i++ {
		fmt.Fprintf(&t.b, `<a:gridCol w="%d"/>`, colW)
	}
	t.b.WriteString(`</a:tblGrid>`)

	rowH := tbl.Frame.H / EMU(len(tbl.Rows))
	border := `<a:ln%s w="6350">` + solidFill(tableBorder) + `</a:ln%s>`
	borders := fmt.Sprintf(border, "L", "L") + fmt.Sprintf(border, "R", "R") + fmt.Sprintf(border, "T", "T") + fmt.Sprintf(border, "B", "B")
	for i, row := range tbl.Rows {
		fmt.Fprintf(&t.b, `<a:tr h="%d">`, rowH)
		header := i == 0
		for _, cell := range row {
			run := Run{Text: cell, Size: tbl.FontSize, Bold: header && tbl.HeaderBold}
			p := Paragraph{}
			if cell != "" {
				p.Runs = []Run{run}
			}
			t.b.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/>` + paragraphXML(p) + `</a:txBody><a:tcPr>` + borders)
			if header && tbl.HeaderFill != "" {
				t.b.WriteString(solidFill(tbl.HeaderFill))
			}
			t.b.WriteString(`</a:tcPr></a:tc>`)
		}
		t.b.WriteString(`</a:tr>`)
	}
	t.b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	return nil
}

func (t *spTree) shape(s Shape) error {
	switch v := s.(type) {
	case TextBox:
		t.textBox(v)
	case Rectangle:
		t.rectangle(v)
	case Line:
		t.line(v)
	case Table:
		return t.table(v)
	default:
		return fmt.Errorf("pptx: unsupported shape %T", s)
	}
	return nil
}

func bulletParagraphs(items []string) []Paragraph {
	out := make([]Paragraph, 0, len(items))
	for _, it := range items {
		out = append(out, Paragraph{Runs: []Run{{Text: it}}})
	}
	return out
}

func titleParagraphs(title string) []Paragraph {
	if title == "" {
		return nil
	}
	return []Paragraph{{Runs: []Run{{Text: title}}}}
}

// slideXML renders one slide. Placeholder geometry mirrors the layouts.
func slideXML(s Slide) (string, error) {
	t := newSpTree()
	switch s.Layout {
	case LayoutTitle:
		t.placeholder("Title", `type="ctrTitle"`, layoutTitleFrame, titleParagraphs(s.Title))
		if s.Subtitle != "" {
			t.placeholder("Subtitle", `type="subTitle" idx="1"`, layoutSubtitleFrame, titleParagraphs(s.Subtitle))
		}
	case LayoutTitleAndBody:
		t.placeholder("Title", `type="title"`, layoutHeadingFrame, titleParagraphs(s.Title))
		t.placeholder("Content Placeholder", `idx="1"`, layoutBodyFrame, bulletParagraphs(s.Body))
	case LayoutTitleOnly:
		t.placeholder("Title", `type="title"`, layoutHeadingFrame, titleParagraphs(s.Title))
	default:
		return "", fmt.Errorf("pptx: unknown layout %d", int(s.Layout))
	}
	for i, sh := range s.Shapes {
		if err := t.shape(sh); err != nil {
			return "", fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return xmlHeader + `<p:sld ` + pmlNamespaces + `><p:cSld>` + t.close() +
		`</p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`, nil
}
