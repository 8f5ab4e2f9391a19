package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"stratiq-api/pkg/analysis"
)

var errNilState = errors.New("export: state is required")

// Document is the full analysis export.
type Document struct {
	AnalysisID string                    `json:"analysis_id"`
	Company    string                    `json:"company"`
	Scope      string                    `json:"scope"`
	Product    string                    `json:"product"`
	Geo        string                    `json:"geo"`
	Notes      string                    `json:"notes"`
	Frameworks []analysis.Framework      `json:"frameworks"`
	Results    analysis.Results          `json:"results"`
	Recs       []analysis.Recommendation `json:"recs"`
	ExportedAt string                    `json:"exported_at"`
}

// SWOTDocument is the SWOT-only export with its session metadata.
type SWOTDocument struct {
	AnalysisID     string        `json:"analysis_id"`
	Timestamp      string        `json:"timestamp"`
	Company        string        `json:"company"`
	Product        string        `json:"product"`
	Industry       string        `json:"industry"`
	ProductFeature string        `json:"product_feature"`
	Geography      string        `json:"geography"`
	Notes          string        `json:"notes"`
	SWOT           analysis.SWOT `json:"swot"`
}

// NewDocument snapshots the state. exported_at is UTC with a trailing Z.
func NewDocument(st *analysis.State, now time.Time) Document {
	recs := st.Recs
	if recs == nil {
		recs = []analysis.Recommendation{}
	}
	frameworks := st.Frameworks
	if frameworks == nil {
		frameworks = []analysis.Framework{}
	}
	return Document{
		AnalysisID: st.AnalysisID,
		Company:    st.Company,
		Scope:      st.Scope,
		Product:    st.Product,
		Geo:        st.Geo,
		Notes:      st.Notes,
		Frameworks: frameworks,
		Results:    st.Results,
		Recs:       recs,
		ExportedAt: now.UTC().Format("2006-01-02T15:04:05.000000") + "Z",
	}
}

// NewSWOTDocument snapshots the SWOT and the inputs that produced it.
func NewSWOTDocument(st *analysis.State, now time.Time) SWOTDocument {
	return SWOTDocument{
		AnalysisID:     st.AnalysisID,
		Timestamp:      now.Format(time.RFC3339),
		Company:        st.Company,
		Product:        st.Product,
		Industry:       st.Industry,
		ProductFeature: st.Scope,
		Geography:      st.Geo,
		Notes:          st.Notes,
		SWOT:           st.Results.SWOT,
	}
}

// JSON renders the full export and its file name.
func JSON(st *analysis.State, now time.Time) ([]byte, string, error) {
	if st == nil {
		return nil, "", errNilState
	}
	data, err := MarshalIndent(NewDocument(st, now))
	if err != nil {
		return nil, "", err
	}
	return data, FileName(st.Company, st.Product, ExtJSON, now), nil
}

// SWOTJSON renders the SWOT export and its file name.
func SWOTJSON(st *analysis.State, now time.Time) ([]byte, string, error) {
	if st == nil {
		return nil, "", errNilState
	}
	data, err := MarshalIndent(NewSWOTDocument(st, now))
	if err != nil {
		return nil, "", err
	}
	return data, SWOTFileName(st.Company, now), nil
}

// MarshalIndent encodes v with two-space indentation and without HTML
// escaping, so "&" and "<" survive as typed.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
