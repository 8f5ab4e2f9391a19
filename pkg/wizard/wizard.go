// Package wizard holds the per-user wizard session: which step the user is
// on and the analysis state being built up.
package wizard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"stratiq-api/pkg/analysis"
)

// Step is an ordinal wizard step.
type Step int

const (
	StepInputs Step = iota
	StepFrameworks
	StepReview
	StepRecommendations
	StepExport
)

// StepCount is the number of wizard steps.
const StepCount = int(StepExport) + 1

var stepNames = [...]string{"Inputs", "Frameworks", "Review", "Recommendations", "Export"}

func (s Step) String() string {
	if s < StepInputs || s > StepExport {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

var (
	ErrMissingRequired  = errors.New("Company and Product are required.")
	ErrNoFrameworks     = errors.New("Select at least one framework.")
	ErrUnknownFramework = errors.New("unknown framework")
	ErrMissingTitle     = errors.New("Recommendation title is required.")
	ErrInvalidEdit      = errors.New("invalid results edit")
)

// Session is one user's wizard run. It is passed explicitly to every
// operation; nothing about it lives in package state.
type Session struct {
	ID        string          `json:"id"`
	Step      Step            `json:"step"`
	State     *analysis.State `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewSession starts a session at the inputs step.
func NewSession(now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Step:      StepInputs,
		State:     analysis.NewState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Advance moves one step forward, stopping at Export.
func (s *Session) Advance(now time.Time) {
	if s.Step < StepExport {
		s.Step++
	}
	s.UpdatedAt = now
}

// Back moves one step back, stopping at Inputs.
func (s *Session) Back(now time.Time) {
	if s.Step > StepInputs {
		s.Step--
	}
	s.UpdatedAt = now
}

// Reset discards all work and starts a fresh analysis.
func (s *Session) Reset(now time.Time) {
	s.Step = StepInputs
	s.State = analysis.NewState()
	s.UpdatedAt = now
}

// SetInputs stores trimmed inputs.
func (s *Session) SetInputs(in analysis.Inputs, offline bool, now time.Time) {
	s.State.Inputs = in.Trimmed()
	s.State.OfflineMode = offline
	s.UpdatedAt = now
}

// SelectFrameworks replaces the selection. Names are parsed leniently and
// de-duplicated, keeping the first occurrence.
func (s *Session) SelectFrameworks(names []string, now time.Time) error {
	if len(names) == 0 {
		return ErrNoFrameworks
	}
	seen := make(map[analysis.Framework]bool, len(names))
	out := make([]analysis.Framework, 0, len(names))
	for _, name := range names {
		fw, err := analysis.ParseFramework(name)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownFramework, name)
		}
		if seen[fw] {
			continue
		}
		seen[fw] = true
		out = append(out, fw)
	}
	s.State.Frameworks = out
	s.UpdatedAt = now
	return nil
}

// AddRecommendation appends a user-entered recommendation.
func (s *Session) AddRecommendation(rec analysis.Recommendation, now time.Time) error {
	rec = rec.Normalize()
	if rec.Title == "" {
		return ErrMissingTitle
	}
	s.State.Recs = append(s.State.Recs, rec)
	s.UpdatedAt = now
	return nil
}

// MergeResults folds a generation run into the stored results. Frameworks
// the run did not produce keep their earlier (possibly edited) content. The
// combined results are returned for recommendation generation.
func (s *Session) MergeResults(run analysis.Results) analysis.Results {
	s.State.Results.Merge(run)
	return s.State.Results
}

// MarkGenerated stores the recommendations of a generation run and moves the
// session to review.
func (s *Session) MarkGenerated(recs []analysis.Recommendation, now time.Time) {
	s.State.Recs = append([]analysis.Recommendation{}, recs...)
	s.Step = StepReview
	s.UpdatedAt = now
}

// ValidateInputs checks the fields generation cannot run without.
func ValidateInputs(st *analysis.State) error {
	if st == nil || strings.TrimSpace(st.Company) == "" || strings.TrimSpace(st.Product) == "" {
		return ErrMissingRequired
	}
	return nil
}

// ValidateForGeneration also requires a framework selection.
func ValidateForGeneration(st *analysis.State) error {
	if err := ValidateInputs(st); err != nil {
		return err
	}
	if len(st.Frameworks) == 0 {
		return ErrNoFrameworks
	}
	return nil
}

// ListToText renders a list for a multi-line editor.
func ListToText(items []string) string {
	return strings.Join(items, "\n")
}

// TextToList parses editor text back into a list, stripping bullet markers
// and dropping blank lines.
func TextToList(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if item := strings.Trim(line, " \t\r-•"); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// EditResults replaces one framework's results with user-edited content.
// SWOT and Ansoff lists accept either JSON arrays or newline-separated
// editor text; industry and benchmark edits use their export JSON shape.
func (s *Session) EditResults(fw analysis.Framework, raw []byte, now time.Time) error {
	raw = bytes.TrimSpace(raw)
	r := &s.State.Results
	switch fw {
	case analysis.FrameworkSWOT:
		obj, err := editObject(raw)
		if err != nil {
			return err
		}
		r.SWOT = analysis.SWOT{
			S: editItems(obj["S"]),
			W: editItems(obj["W"]),
			O: editItems(obj["O"]),
			T: editItems(obj["T"]),
		}
	case analysis.FrameworkAnsoff:
		obj, err := editObject(raw)
		if err != nil {
			return err
		}
		r.Ansoff = analysis.Ansoff{
			MarketPenetration:  editList(obj["market_penetration"]),
			MarketDevelopment:  editList(obj["market_development"]),
			ProductDevelopment: editList(obj["product_development"]),
			Diversification:    editList(obj["diversification"]),
		}
	case analysis.FrameworkIndustry:
		var inds analysis.Industries
		if err := json.Unmarshal(raw, &inds); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidEdit, err)
		}
		r.Industries = inds
	case analysis.FrameworkBenchmark:
		b, err := analysis.ParseBenchmarkStrict(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidEdit, err)
		}
		r.Benchmark = &b
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFramework, fw)
	}
	s.UpdatedAt = now
	return nil
}

func editObject(raw []byte) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEdit, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidEdit)
	}
	return obj, nil
}

func editList(v any) []string {
	if text, ok := v.(string); ok {
		return TextToList(text)
	}
	return analysis.CoerceStrings(v)
}

func editItems(v any) []analysis.SWOTItem {
	if text, ok := v.(string); ok {
		return analysis.PlainItems(TextToList(text))
	}
	list, ok := v.([]any)
	if !ok {
		return analysis.PlainItems(analysis.CoerceStrings(v))
	}
	out := make([]analysis.SWOTItem, 0, len(list))
	for _, el := range list {
		if item := analysis.SWOTItemFromValue(el); item.Text != "" {
			out = append(out, item)
		}
	}
	return out
}
