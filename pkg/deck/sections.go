package deck

import (
	"fmt"
	"strings"
	"time"

	"stratiq-api/pkg/analysis"
	"stratiq-api/pkg/deck/pptx"
	"stratiq-api/pkg/export"
)

const (
	titleSWOT            = "SWOT"
	titleAnsoff          = "Ansoff Matrix"
	titleBenchmark       = "Competitor Benchmark"
	titleIndustry        = "Industry Analysis"
	titleRecommendations = "Top 5 Recommendations — Impact × Effort"
	titleAppendix        = "Appendix — Raw Analysis JSON"
	titleSnapshot        = "Executive Snapshot"
	titleAgenda          = "Agenda"

	contSuffix = " (cont.)"
	legendText = "Q1: Quick Wins   Q2: Strategic Bets   Q3: Fill-ins   Q4: Long Shots"

	maxSnapshotBullets = 6
	appendixChunk      = 2000
)

var agendaItems = []string{"Inputs & Goals", "Framework Insights", "Recommendations", "Next Steps"}

func titleSlide(title string, now time.Time) pptx.Slide {
	return pptx.Slide{
		Layout:   pptx.LayoutTitle,
		Title:    title,
		Subtitle: "Strategy Snapshot — " + now.Format("Jan 02, 2006"),
		Shapes: []pptx.Shape{
			pptx.Rectangle{
				Frame: pptx.Rect{X: pptx.Inches(0.6), Y: pptx.Inches(0.6), W: pptx.Inches(2.2), H: pptx.Inches(0.15)},
				Fill:  colorPrimary,
			},
		},
	}
}

func agendaSlide() pptx.Slide {
	return pptx.Slide{Layout: pptx.LayoutTitleAndBody, Title: titleAgenda, Body: append([]string(nil), agendaItems...)}
}

// snapshotBullets summarises what the analysis contains. The check order
// fixes the bullet order.
func snapshotBullets(r analysis.Results, recs []analysis.Recommendation) []string {
	var out []string
	if r.Has(analysis.FrameworkIndustry) {
		out = append(out, "Industry Analysis")
	}
	for _, q := range []struct {
		label string
		items []analysis.SWOTItem
	}{
		{"Strengths", r.SWOT.S},
		{"Weaknesses", r.SWOT.W},
		{"Opportunities", r.SWOT.O},
		{"Threats", r.SWOT.T},
	} {
		if texts := analysis.Texts(q.items); len(texts) > 0 {
			out = append(out, q.label+": "+strings.Join(analysis.TopN(texts, 2), ", "))
		}
	}
	if r.Has(analysis.FrameworkAnsoff) {
		out = append(out, "Focus: Execute 1–2 high‑impact Ansoff plays next quarter.")
	}
	if len(recs) > 0 {
		out = append(out, "Top priority: "+orDefault(recs[0].Title, "First recommendation"))
	}
	return analysis.TopN(out, maxSnapshotBullets)
}

func snapshotSlide(r analysis.Results, recs []analysis.Recommendation) pptx.Slide {
	return pptx.Slide{Layout: pptx.LayoutTitleAndBody, Title: titleSnapshot, Body: snapshotBullets(r, recs)}
}

func industrySlide(inds analysis.Industries) (pptx.Slide, bool) {
	records := inds.LongRecords()
	if len(records) == 0 {
		return pptx.Slide{}, false
	}
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, append([]string(nil), analysis.LongRecordHeaders...))
	for _, rec := range records {
		rows = append(rows, rec.Cells())
	}
	return pptx.Slide{
		Layout: pptx.LayoutTitleOnly,
		Title:  titleIndustry,
		Shapes: []pptx.Shape{pptx.Table{
			Frame:      pptx.Rect{X: margin, Y: pptx.Inches(1.3), W: slideW - 2*margin, H: pptx.Inches(5.2)},
			Rows:       rows,
			HeaderBold: true,
			FontSize:   sizeTable,
		}},
	}, true
}

func swotSlide(s analysis.SWOT) (pptx.Slide, bool) {
	if s.Empty() {
		return pptx.Slide{}, false
	}
	boxW := (slideW - 3*margin) / 2
	boxH := (slideH - 2*margin - pptx.Inches(1.0)) / 2
	x1, x2 := margin/2, margin/2+boxW+margin
	y1 := pptx.Inches(1.5)
	y2 := y1 + boxH + margin/2
	titleH := pptx.Inches(0.35)
	gap := pptx.Inches(0.4)

	slide := pptx.Slide{Layout: pptx.LayoutTitleOnly, Title: titleSWOT}
	for _, cell := range []struct {
		title string
		items []analysis.SWOTItem
		x, y  pptx.EMU
	}{
		{"Strengths", s.S, x1, y1},
		{"Weaknesses", s.W, x2, y1},
		{"Opportunities", s.O, x1, y2},
		{"Threats", s.T, x2, y2},
	} {
		slide.Shapes = append(slide.Shapes,
			textBox(pptx.Rect{X: cell.x, Y: cell.y, W: boxW, H: titleH}, cell.title, 16, true, colorPrimary),
			bulletBox(pptx.Rect{X: cell.x, Y: cell.y + gap, W: boxW, H: boxH - gap}, analysis.Texts(cell.items)),
		)
	}
	return slide, true
}

func ansoffSlide(a analysis.Ansoff) (pptx.Slide, bool) {
	if a.Empty() {
		return pptx.Slide{}, false
	}
	frame := pptx.Rect{X: margin, Y: pptx.Inches(1.5), W: slideW - 2*margin, H: pptx.Inches(4.6)}
	shapes, quads := grid(frame)

	slide := pptx.Slide{Layout: pptx.LayoutTitleOnly, Title: titleAnsoff, Shapes: shapes}
	for i, q := range []struct {
		title string
		items []string
	}{
		{"Market Penetration", a.MarketPenetration},
		{"Product Development", a.ProductDevelopment},
		{"Market Development", a.MarketDevelopment},
		{"Diversification", a.Diversification},
	} {
		quad := quads[i]
		inset := pptx.Inches(0.1)
		slide.Shapes = append(slide.Shapes,
			textBox(pptx.Rect{X: quad.X + inset, Y: quad.Y + pptx.Inches(0.05), W: quad.W - 2*inset, H: pptx.Inches(0.3)}, q.title, 14, true, colorPrimary),
			bulletBox(pptx.Rect{X: quad.X + inset, Y: quad.Y + pptx.Inches(0.45), W: quad.W - 2*inset, H: quad.H - pptx.Inches(0.6)}, q.items),
		)
	}
	slide.Shapes = append(slide.Shapes,
		smallLabel("Existing Products → New Products", frame.X+frame.W/2-pptx.Inches(1.2), frame.Y-pptx.Inches(0.35), 0),
		smallLabel("New Markets → Existing Markets", frame.X-pptx.Inches(1.1), frame.Y+frame.H/2+pptx.Inches(0.05), 270),
	)
	return slide, true
}

func benchmarkSlide(company string, b *analysis.Benchmark) (pptx.Slide, bool) {
	if b == nil || b.Empty() {
		return pptx.Slide{}, false
	}
	header := append([]string{"Capability", company}, b.Peers...)
	rows := [][]string{header}
	for _, r := range b.Table {
		row := make([]string, 0, len(header))
		row = append(row, r.Capability, string(r.Rating(company)))
		for _, p := range b.Peers {
			row = append(row, string(r.Rating(p)))
		}
		rows = append(rows, row)
	}
	return pptx.Slide{
		Layout: pptx.LayoutTitleOnly,
		Title:  titleBenchmark,
		Shapes: []pptx.Shape{pptx.Table{
			Frame:      pptx.Rect{X: margin, Y: pptx.Inches(1.2), W: slideW - 2*margin, H: pptx.Inches(5.2)},
			Rows:       rows,
			HeaderBold: true,
			HeaderFill: colorLight,
			FontSize:   sizeTable,
		}},
	}, true
}

func recommendationsSlide(recs []analysis.Recommendation) (pptx.Slide, bool) {
	if len(recs) == 0 {
		return pptx.Slide{}, false
	}
	frame := pptx.Rect{X: margin, Y: pptx.Inches(2), W: slideW - 2*margin, H: pptx.Inches(4.6)}
	shapes, quads := grid(frame)

	slide := pptx.Slide{Layout: pptx.LayoutTitleOnly, Title: titleRecommendations, Shapes: shapes}
	slide.Shapes = append(slide.Shapes,
		smallLabel("Impact ->", frame.X-pptx.Inches(1.1), frame.Y+frame.H-pptx.Inches(1.0), 270),
		smallLabel("Effort ->", frame.X+frame.W-pptx.Inches(0.8), frame.Y+frame.H+pptx.Inches(0.05), 0),
	)
	for _, pl := range placeRecommendations(analysis.TopN(recs, analysis.MaxRecommendations), quads) {
		title := orDefault(pl.Rec.Title, fmt.Sprintf("Rec %d", pl.Index))
		slide.Shapes = append(slide.Shapes, textBox(pl.Frame, fmt.Sprintf("%d. %s", pl.Index, title), sizeBody, false, colorDark))
	}
	slide.Shapes = append(slide.Shapes,
		textBox(pptx.Rect{X: margin, Y: frame.Y + frame.H + pptx.Inches(0.2), W: slideW - 2*margin, H: pptx.Inches(0.6)}, legendText, sizeLegend, false, colorMed),
	)
	return slide, true
}

type appendixPayload struct {
	Frameworks []analysis.Framework      `json:"frameworks"`
	Results    analysis.Results          `json:"results"`
	Recs       []analysis.Recommendation `json:"recs"`
}

func appendixJSON(st *analysis.State) (string, error) {
	payload := appendixPayload{Frameworks: st.Frameworks, Results: st.Results, Recs: st.Recs}
	if payload.Frameworks == nil {
		payload.Frameworks = []analysis.Framework{}
	}
	if payload.Recs == nil {
		payload.Recs = []analysis.Recommendation{}
	}
	data, err := export.MarshalIndent(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// chunkText splits s into pieces of at most n characters.
func chunkText(s string, n int) []string {
	runes := []rune(s)
	if len(runes) == 0 {
		return []string{""}
	}
	var out []string
	for start := 0; start < len(runes); start += n {
		end := start + n
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}

func appendixSlides(text string) []pptx.Slide {
	chunks := chunkText(text, appendixChunk)
	slides := make([]pptx.Slide, 0, len(chunks))
	for i, chunk := range chunks {
		title := titleAppendix
		if i > 0 {
			title += contSuffix
		}
		box := pptx.TextBox{
			Frame: pptx.Rect{X: margin, Y: pptx.Inches(1.2), W: slideW - 2*margin, H: pptx.Inches(5.5)},
			Wrap:  true,
		}
		for _, line := range strings.Split(chunk, "\n") {
			box.Paragraphs = append(box.Paragraphs, pptx.Paragraph{
				Runs: []pptx.Run{{Text: line, Size: sizeMono, Color: colorDark, Font: monoFont}},
			})
		}
		slides = append(slides, pptx.Slide{Layout: pptx.LayoutTitleOnly, Title: title, Shapes: []pptx.Shape{box}})
	}
	return slides
}
