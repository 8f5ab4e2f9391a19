package export

import (
	"strings"
	"time"
)

// Extensions and MIME types of the export formats.
const (
	ExtJSON = "json"
	ExtXLSX = "xlsx"
	ExtPPTX = "pptx"

	MimeJSON = "application/json"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// FileName builds "{company}_{product}_{YYYYMMDD}_strategy.{ext}". Blank
// names become "company" and "product".
func FileName(company, product, ext string, t time.Time) string {
	return safeName(company, "company") + "_" + safeName(product, "product") + "_" + t.Format("20060102") + "_strategy." + ext
}

// SWOTFileName builds "swot_{company}_{YYYYMMDD}.json".
func SWOTFileName(company string, t time.Time) string {
	return "swot_" + safeName(company, "company") + "_" + t.Format("20060102") + ".json"
}

func safeName(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		s = def
	}
	return strings.ReplaceAll(s, " ", "_")
}
