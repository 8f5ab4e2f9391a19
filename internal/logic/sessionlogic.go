package logic

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"stratiq-api/internal/svc"
	"stratiq-api/internal/types"
	"stratiq-api/pkg/analysis"
	"stratiq-api/pkg/wizard"
)

type SessionLogic struct {
	base
}

func NewSessionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SessionLogic {
	return &SessionLogic{base: newBase(ctx, svcCtx)}
}

func (l *SessionLogic) Create() (*types.SessionResponse, error) {
	s := wizard.NewSession(l.now())
	if err := l.save(s); err != nil {
		return nil, err
	}
	l.Infow("session created", logx.Field("session", s.ID), logx.Field("analysis", s.State.AnalysisID))
	return sessionResponse(s, nil), nil
}

func (l *SessionLogic) Get(req *types.SessionRequest) (*types.SessionResponse, error) {
	s, err := l.load(req.ID)
	if err != nil {
		return nil, err
	}
	return sessionResponse(s, nil), nil
}

func (l *SessionLogic) Delete(req *types.SessionRequest) error {
	return l.svcCtx.Sessions.Delete(l.ctx, req.ID)
}

// SetInputs stores the form inputs. Company and product are required; an
// invalid form leaves the session untouched.
func (l *SessionLogic) SetInputs(req *types.InputsRequest) (*types.SessionResponse, error) {
	s, err := l.load(req.ID)
	if err != nil {
		return nil, err
	}
	in := analysis.Inputs{
		Company:  req.Company,
		Product:  req.Product,
		Industry: req.Industry,
		Scope:    req.Scope,
		Geo:      req.Geo,
		Notes:    req.Notes,
	}.Trimmed()
	if in.Company == "" || in.Product == "" {
		return nil, wizard.ErrMissingRequired
	}
	s.SetInputs(in, req.OfflineMode, l.now())
	if err := l.save(s); err != nil {
		return nil, err
	}
	return sessionResponse(s, nil), nil
}

func (l *SessionLogic) SelectFrameworks(req *types.FrameworksRequest) (*types.SessionResponse, error) {
	s, err := l.load(req.ID)
	if err != nil {
		return nil, err
	}
	if err := s.SelectFrameworks(req.Frameworks, l.now()); err != nil {
		return nil, err
	}
	if err := l.save(s); err != nil {
		return nil, err
	}
	return sessionResponse(s, nil), nil
}

// Step moves the wizard. Leaving the inputs step requires company and
// product; leaving the framework step also requires a selection.
func (l *SessionLogic) Step(req *types.StepRequest) (*types.SessionResponse, error) {
	s, err := l.load(req.ID)
	if err != nil {
		return nil, err
	}
	now := l.now()
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "advance", "next":
		switch s.Step {
		case wizard.StepInputs:
			err = wizard.ValidateInputs(s.State)
		case wizard.StepFrameworks:
			err = wizard.ValidateForGeneration(s.State)
		}
		if err != nil {
			return nil, err
		}
		s.Advance(now)
	case "back":
		s.Back(now)
	case "reset":
		s.Reset(now)
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnknownAction, req.Action)
	}
	if err := l.save(s); err != nil {
		return nil, err
	}
	return sessionResponse(s, nil), nil
}

func (l *SessionLogic) AddRecommendation(req *types.RecommendationRequest) (*types.SessionResponse, error) {
	s, err := l.load(req.ID)
	if err != nil {
		return nil, err
	}
	rec := analysis.Recommendation{
		Title:     req.Title,
		Impact:    req.Impact,
		Effort:    req.Effort,
		Rationale: strings.TrimSpace(req.Rationale),
	}
	if err := s.AddRecommendation(rec, l.now()); err != nil {
		return nil, err
	}
	if err := l.save(s); err != nil {
		return nil, err
	}
	return sessionResponse(s, nil), nil
}

// UpdateResults replaces one framework's results with user edits.
func (l *SessionLogic) UpdateResults(req *types.ResultsPath, body []byte) (*types.SessionResponse, error) {
	fw, err := parseFramework(req.Framework)
	if err != nil {
		return nil, err
	}
	s, err := l.load(req.ID)
	if err != nil {
		return nil, err
	}
	if err := s.EditResults(fw, body, l.now()); err != nil {
		return nil, err
	}
	if err := l.save(s); err != nil {
		return nil, err
	}
	return sessionResponse(s, nil), nil
}

func parseFramework(name string) (analysis.Framework, error) {
	fw, err := analysis.ParseFramework(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", wizard.ErrUnknownFramework, name)
	}
	return fw, nil
}
