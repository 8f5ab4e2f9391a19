// Package deck turns an analysis state into a strategy slide deck.
package deck

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stratiq-api/pkg/analysis"
	"stratiq-api/pkg/deck/pptx"
	"stratiq-api/pkg/export"
)

// Builder lays out decks. The clock only affects the subtitle date, the
// file name and package metadata.
type Builder struct {
	now func() time.Time
}

// Option customises a Builder.
type Option func(*Builder)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder returns a Builder using the wall clock unless overridden.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBuilder = NewBuilder()

// Build lays out a deck with the default builder.
func Build(st *analysis.State) (*pptx.Presentation, error) { return defaultBuilder.Build(st) }

// Render builds and serialises a deck with the default builder.
func Render(st *analysis.State) ([]byte, string, error) { return defaultBuilder.Render(st) }

// Build lays out every section in order. Sections without data are left
// out; nothing optional causes an error.
func (b *Builder) Build(st *analysis.State) (*pptx.Presentation, error) {
	if st == nil {
		return nil, errors.New("deck: state is required")
	}
	now := b.now()
	company := orDefault(st.Company, "Company")
	product := orDefault(st.Product, "Product")
	recs := st.TopRecs()

	title := fmt.Sprintf("%s × %s", product, company)
	p := &pptx.Presentation{Title: title, Created: now}
	p.Slides = append(p.Slides,
		titleSlide(title, now),
		agendaSlide(),
		snapshotSlide(st.Results, recs),
	)
	if s, ok := industrySlide(st.Results.Industries); ok {
		p.Slides = append(p.Slides, s)
	}
	if s, ok := swotSlide(st.Results.SWOT); ok {
		p.Slides = append(p.Slides, s)
	}
	if s, ok := ansoffSlide(st.Results.Ansoff); ok {
		p.Slides = append(p.Slides, s)
	}
	if s, ok := benchmarkSlide(company, st.Results.Benchmark); ok {
		p.Slides = append(p.Slides, s)
	}
	if s, ok := recommendationsSlide(recs); ok {
		p.Slides = append(p.Slides, s)
	}

	appendix, err := appendixJSON(st)
	if err != nil {
		return nil, fmt.Errorf("deck: encode appendix: %w", err)
	}
	p.Slides = append(p.Slides, appendixSlides(appendix)...)
	return p, nil
}

// Render builds the deck and returns the .pptx bytes with a suggested
// "{Company}_{Product}_{YYYYMMDD}_strategy.pptx" file name.
func (b *Builder) Render(st *analysis.State) ([]byte, string, error) {
	p, err := b.Build(st)
	if err != nil {
		return nil, "", err
	}
	data, err := p.Bytes()
	if err != nil {
		return nil, "", fmt.Errorf("deck: %w", err)
	}
	name := export.FileName(orDefault(st.Company, "Company"), orDefault(st.Product, "Product"), export.ExtPPTX, p.Created)
	return data, name, nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
