package logic

import (
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"stratiq-api/internal/svc"
	"stratiq-api/internal/types"
	"stratiq-api/pkg/strategy"
	"stratiq-api/pkg/wizard"
)

var (
	ErrUnknownAction = errors.New(`action must be one of "advance", "back", "reset"`)
	ErrUnknownFormat = errors.New(`export format must be one of "pptx", "json", "swot", "xlsx"`)
)

// base carries what every logic type needs: a context-bound logger, the
// request context and the service dependencies.
type base struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func newBase(ctx context.Context, svcCtx *svc.ServiceContext) base {
	return base{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (b base) now() time.Time {
	return b.svcCtx.Now()
}

func (b base) load(id string) (*wizard.Session, error) {
	return b.svcCtx.Sessions.Get(b.ctx, id)
}

func (b base) save(s *wizard.Session) error {
	return b.svcCtx.Sessions.Save(b.ctx, s)
}

// generator honours the session's offline toggle.
func (b base) generator(s *wizard.Session) *strategy.Generator {
	if s.State.OfflineMode {
		return b.svcCtx.Generator.Offline()
	}
	return b.svcCtx.Generator
}

func sessionResponse(s *wizard.Session, sources map[string]string) *types.SessionResponse {
	return &types.SessionResponse{
		ID:        s.ID,
		Step:      int(s.Step),
		StepName:  s.Step.String(),
		State:     s.State,
		Sources:   sources,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
