package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePresentation() *Presentation {
	return &Presentation{
		Title:   "Hub × Acme",
		Created: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		Slides: []Slide{
			{Layout: LayoutTitle, Title: "Hub × Acme", Subtitle: "Strategy Snapshot"},
			{Layout: LayoutTitleAndBody, Title: "Agenda", Body: []string{"Inputs & Goals", "Next <Steps>"}},
			{Layout: LayoutTitleOnly, Title: "Grid", Shapes: []Shape{
				Rectangle{Frame: Rect{X: 1, Y: 1, W: 100, H: 100}, Fill: "FFFFFF", Line: "4B5563"},
				Line{Frame: Rect{X: 50, Y: 1, H: 100}, Color: "E5E7EB"},
				TextBox{Frame: Rect{W: 10, H: 10}, Rotation: 270, Paragraphs: []Paragraph{
					{Runs: []Run{{Text: "Label", Size: 11, Bold: true, Color: "4B5563", Font: "Courier New"}}, Bullet: true, SpaceAfter: 6},
				}},
				Table{Frame: Rect{W: 300, H: 60}, Rows: [][]string{{"A", "B"}, {"1", ""}}, HeaderBold: true, HeaderFill: "E5E7EB", FontSize: 12},
			}},
		},
	}
}

func readPackage(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = string(b)
	}
	return out
}

func wellFormed(t *testing.T, name, content string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(content))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err, name)
	}
}

func TestWritePackage(t *testing.T) {
	data, err := samplePresentation().Bytes()
	require.NoError(t, err)

	parts := readPackage(t, data)
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slideLayouts/slideLayout3.xml",
		"docProps/core.xml",
	} {
		assert.Contains(t, parts, name)
	}

	var slides int
	for name, content := range parts {
		wellFormed(t, name, content)
		if strings.HasPrefix(name, "ppt/slides/slide") {
			slides++
		}
	}
	assert.Equal(t, 3, slides, "one part per slide")

	assert.Equal(t, 3, strings.Count(parts["ppt/presentation.xml"], "<p:sldId "))
	assert.Equal(t, 3, strings.Count(parts["[Content_Types].xml"], ctSlide))
	assert.Contains(t, parts["ppt/slides/_rels/slide2.xml.rels"], "slideLayout2.xml")
	assert.Contains(t, parts["ppt/slides/_rels/slide3.xml.rels"], "slideLayout3.xml")
}

func TestSlideContent(t *testing.T) {
	data, err := samplePresentation().Bytes()
	require.NoError(t, err)
	parts := readPackage(t, data)

	title := parts["ppt/slides/slide1.xml"]
	assert.Contains(t, title, `<p:ph type="ctrTitle"/>`)
	assert.Contains(t, title, `<a:t>Hub × Acme</a:t>`)
	assert.Contains(t, title, `type="subTitle" idx="1"`)

	agenda := parts["ppt/slides/slide2.xml"]
	assert.Contains(t, agenda, `<a:t>Inputs &amp; Goals</a:t>`)
	assert.Contains(t, agenda, `<a:t>Next &lt;Steps&gt;</a:t>`)

	grid := parts["ppt/slides/slide3.xml"]
	assert.Contains(t, grid, `rot="16200000"`)
	assert.Contains(t, grid, `prst="line"`)
	assert.Contains(t, grid, `<a:latin typeface="Courier New"/>`)
	assert.Contains(t, grid, `sz="1100" b="1"`)
	assert.Contains(t, grid, `<a:buChar char="•"/>`)
	assert.Equal(t, 2, strings.Count(grid, "<a:tr "))
	assert.Equal(t, 2, strings.Count(grid, `<a:gridCol w="150"/>`))
	assert.Equal(t, 2, strings.Count(grid, `sz="1200" b="1"`), "only header cells are bold")
}

func TestWriteRejectsRaggedTable(t *testing.T) {
	p := &Presentation{Slides: []Slide{{Layout: LayoutTitleOnly, Shapes: []Shape{
		Table{Frame: Rect{W: 10, H: 10}, Rows: [][]string{{"a", "b"}, {"c"}}},
	}}}}
	_, err := p.Bytes()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slide 1")
	assert.Contains(t, err.Error(), "row 1 has 1 cells")
}

func TestWriteRejectsUnknownLayout(t *testing.T) {
	p := &Presentation{Slides: []Slide{{Layout: Layout(9)}}}
	_, err := p.Bytes()
	require.Error(t, err)
}

func TestEmptyPresentation(t *testing.T) {
	data, err := (&Presentation{}).Bytes()
	require.NoError(t, err)
	parts := readPackage(t, data)
	assert.NotContains(t, parts["ppt/presentation.xml"], "sldIdLst")
}

func TestInches(t *testing.T) {
	assert.Equal(t, EMU(914400), Inches(1))
	assert.Equal(t, EMU(731520), Inches(0.8))
	assert.Equal(t, "Title Only", LayoutTitleOnly.String())
}

func TestTextBoxPlainText(t *testing.T) {
	tb := TextBox{Paragraphs: []Paragraph{
		{Runs: []Run{{Text: "a"}, {Text: "b"}}},
		Text("c", 10, ""),
	}}
	assert.Equal(t, "ab\nc", tb.PlainText())
}
