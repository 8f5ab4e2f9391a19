package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"stratiq-api/internal/svc"
	"stratiq-api/internal/types"
	"stratiq-api/pkg/analysis"
	"stratiq-api/pkg/strategy"
	"stratiq-api/pkg/wizard"
)

// recsSource is the sources key for recommendations.
const recsSource = "recs"

type GenerateLogic struct {
	base
}

func NewGenerateLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GenerateLogic {
	return &GenerateLogic{base: newBase(ctx, svcCtx)}
}

// Scope fills the session scope from the company name. A blank or failed
// suggestion leaves the scope as it was.
func (l *GenerateLogic) Scope(req *types.ScopeRequest) (*types.ScopeResponse, error) {
	s, err := l.load(req.ID)
	if err != nil {
		return nil, err
	}
	company := strings.TrimSpace(req.Company)
	if company == "" {
		company = s.State.Company
	}
	scope := l.generator(s).GenerateScope(l.ctx, company)
	if scope == "" {
		return &types.ScopeResponse{Scope: s.State.Scope}, nil
	}

	s.State.Scope = scope
	s.UpdatedAt = l.now()
	if err := l.save(s); err != nil {
		return nil, err
	}
	return &types.ScopeResponse{Scope: scope, Filled: true}, nil
}

// Generate runs every selected framework, merges the run into the stored
// results, derives recommendations from the merged set and moves the
// session to review.
func (l *GenerateLogic) Generate(req *types.GenerateRequest) (*types.SessionResponse, error) {
	s, err := l.load(req.ID)
	if err != nil {
		return nil, err
	}
	if err := wizard.ValidateForGeneration(s.State); err != nil {
		return nil, err
	}

	gen := l.generator(s)
	run, frameworkSources := gen.GenerateSelected(l.ctx, s.State.Inputs, s.State.Frameworks, req.Peers)
	recs, recSource := gen.GenerateRecommendations(l.ctx, s.State.Inputs, s.MergeResults(run))
	s.MarkGenerated(recs, l.now())
	if err := l.save(s); err != nil {
		return nil, err
	}

	sources := sourceMap(frameworkSources)
	sources[recsSource] = string(recSource)
	l.Infow("analysis generated",
		logx.Field("session", s.ID),
		logx.Field("frameworks", len(s.State.Frameworks)),
		logx.Field("recs", len(recs)),
		logx.Field("offline", !gen.Available()))
	return sessionResponse(s, sources), nil
}

// Regenerate reruns one framework and keeps the rest of the results.
func (l *GenerateLogic) Regenerate(req *types.RegenerateRequest) (*types.SessionResponse, error) {
	fw, err := parseFramework(req.Framework)
	if err != nil {
		return nil, err
	}
	s, err := l.load(req.ID)
	if err != nil {
		return nil, err
	}
	if err := wizard.ValidateInputs(s.State); err != nil {
		return nil, err
	}

	source, err := l.generator(s).Regenerate(l.ctx, s.State.Inputs, fw, req.Peers, &s.State.Results)
	if err != nil {
		return nil, err
	}
	s.UpdatedAt = l.now()
	if err := l.save(s); err != nil {
		return nil, err
	}
	return sessionResponse(s, map[string]string{string(fw): string(source)}), nil
}

func sourceMap(in map[analysis.Framework]strategy.Source) map[string]string {
	out := make(map[string]string, len(in)+1)
	for fw, src := range in {
		out[string(fw)] = string(src)
	}
	return out
}
