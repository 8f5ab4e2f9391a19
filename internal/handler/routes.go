// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"

	"stratiq-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	httpx.SetErrorHandlerCtx(ErrorHandler)

	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/frameworks",
				Handler: FrameworksHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/sessions",
				Handler: CreateSessionHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/sessions/:id",
				Handler: GetSessionHandler(serverCtx),
			},
			{
				Method:  http.MethodDelete,
				Path:    "/sessions/:id",
				Handler: DeleteSessionHandler(serverCtx),
			},
			{
				Method:  http.MethodPut,
				Path:    "/sessions/:id/inputs",
				Handler: SetInputsHandler(serverCtx),
			},
			{
				Method:  http.MethodPut,
				Path:    "/sessions/:id/frameworks",
				Handler: SelectFrameworksHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/sessions/:id/scope",
				Handler: ScopeHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/sessions/:id/generate",
				Handler: GenerateHandler(serverCtx),
			},
			{
				Method:  http.MethodPut,
				Path:    "/sessions/:id/results/:framework",
				Handler: UpdateResultsHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/sessions/:id/results/:framework/regenerate",
				Handler: RegenerateHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/sessions/:id/recs",
				Handler: AddRecommendationHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/sessions/:id/step",
				Handler: StepHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/sessions/:id/export/:format",
				Handler: ExportHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api/v1"),
	)
}
