package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/tealeg/xlsx/v2"

	"stratiq-api/pkg/analysis"
)

// Sheet names in workbook order.
const (
	SheetIndustry        = "Industry"
	SheetBenchmark       = "Benchmark"
	SheetRecommendations = "Recommendations"
	SheetSWOT            = "SWOT"
)

var (
	recHeaders  = []string{"#", "Title", "Impact", "Effort", "Quadrant", "Rationale"}
	swotHeaders = []string{"Quadrant", "#", "Item", "Impact", "Control", "Priority", "Solution"}
	swotNames   = []string{"Strengths", "Weaknesses", "Opportunities", "Threats"}
)

// Workbook renders the analysis as an .xlsx file with one sheet per
// framework. Sheets without data carry only their header row.
func Workbook(st *analysis.State, now time.Time) ([]byte, string, error) {
	if st == nil {
		return nil, "", errNilState
	}
	f := xlsx.NewFile()
	header := headerStyle()

	sheet, err := f.AddSheet(SheetIndustry)
	if err != nil {
		return nil, "", fmt.Errorf("export: add sheet %s: %w", SheetIndustry, err)
	}
	addRow(sheet, header, analysis.LongRecordHeaders...)
	for _, rec := range st.Results.Industries.LongRecords() {
		row := sheet.AddRow()
		row.AddCell().SetString(rec.Industry)
		if tam, err := strconv.ParseFloat(rec.TAM, 64); err == nil {
			row.AddCell().SetFloat(tam)
		} else {
			row.AddCell().SetString(rec.TAM)
		}
		row.AddCell().SetString(rec.Category)
		row.AddCell().SetInt(rec.Rank)
		row.AddCell().SetString(rec.Factor)
	}

	if sheet, err = f.AddSheet(SheetBenchmark); err != nil {
		return nil, "", fmt.Errorf("export: add sheet %s: %w", SheetBenchmark, err)
	}
	company := st.Company
	if company == "" {
		company = "Company"
	}
	var bench analysis.Benchmark
	if st.Results.Benchmark != nil {
		bench = *st.Results.Benchmark
	}
	addRow(sheet, header, append([]string{"Capability", company}, bench.Peers...)...)
	for _, r := range bench.Table {
		cells := []string{r.Capability, string(r.Rating(company))}
		for _, p := range bench.Peers {
			cells = append(cells, string(r.Rating(p)))
		}
		addRow(sheet, nil, cells...)
	}

	if sheet, err = f.AddSheet(SheetRecommendations); err != nil {
		return nil, "", fmt.Errorf("export: add sheet %s: %w", SheetRecommendations, err)
	}
	addRow(sheet, header, recHeaders...)
	for i, rec := range st.TopRecs() {
		row := sheet.AddRow()
		row.AddCell().SetInt(i + 1)
		row.AddCell().SetString(rec.Title)
		row.AddCell().SetInt(rec.Impact)
		row.AddCell().SetInt(rec.Effort)
		row.AddCell().SetString(rec.Quadrant().String())
		row.AddCell().SetString(rec.Rationale)
	}

	if sheet, err = f.AddSheet(SheetSWOT); err != nil {
		return nil, "", fmt.Errorf("export: add sheet %s: %w", SheetSWOT, err)
	}
	addRow(sheet, header, swotHeaders...)
	swot := st.Results.SWOT
	for q, items := range [][]analysis.SWOTItem{swot.S, swot.W, swot.O, swot.T} {
		for i, it := range items {
			row := sheet.AddRow()
			row.AddCell().SetString(swotNames[q])
			row.AddCell().SetInt(i + 1)
			row.AddCell().SetString(it.Text)
			scoreCell(row.AddCell(), it.Impact)
			scoreCell(row.AddCell(), it.Control)
			row.AddCell().SetString(it.Priority)
			row.AddCell().SetString(it.Solution)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), FileName(st.Company, st.Product, ExtXLSX, now), nil
}

func headerStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	style.Font.Bold = true
	style.ApplyFont = true
	return style
}

func addRow(sheet *xlsx.Sheet, style *xlsx.Style, cells ...string) {
	row := sheet.AddRow()
	for _, c := range cells {
		cell := row.AddCell()
		cell.SetString(c)
		if style != nil {
			cell.SetStyle(style)
		}
	}
}

// scoreCell leaves unscored items blank.
func scoreCell(cell *xlsx.Cell, v int) {
	if v == 0 {
		cell.SetString("")
		return
	}
	cell.SetInt(v)
}
