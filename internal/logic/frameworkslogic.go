package logic

import (
	"context"

	"stratiq-api/internal/svc"
	"stratiq-api/internal/types"
	"stratiq-api/pkg/analysis"
)

type FrameworksLogic struct {
	base
}

func NewFrameworksLogic(ctx context.Context, svcCtx *svc.ServiceContext) *FrameworksLogic {
	return &FrameworksLogic{base: newBase(ctx, svcCtx)}
}

func (l *FrameworksLogic) Frameworks() (*types.FrameworksResponse, error) {
	resp := &types.FrameworksResponse{
		Frameworks: make([]types.FrameworkInfo, 0, len(analysis.Frameworks)),
		Defaults:   make([]string, 0, len(analysis.DefaultFrameworks)),
		Provider:   l.svcCtx.Provider,
	}
	for _, fw := range analysis.Frameworks {
		resp.Frameworks = append(resp.Frameworks, types.FrameworkInfo{Name: string(fw), Key: fw.Key()})
	}
	for _, fw := range analysis.DefaultFrameworks {
		resp.Defaults = append(resp.Defaults, string(fw))
	}
	return resp, nil
}
