package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"stratiq-api/internal/logic"
	"stratiq-api/internal/svc"
	"stratiq-api/internal/types"
)

// maxEditBytes caps the body of a results edit.
const maxEditBytes = 1 << 20

func ScopeHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ScopeRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, badRequest(err))
			return
		}

		l := logic.NewGenerateLogic(r.Context(), svcCtx)
		resp, err := l.Scope(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

func GenerateHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.GenerateRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, badRequest(err))
			return
		}

		l := logic.NewGenerateLogic(r.Context(), svcCtx)
		resp, err := l.Generate(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

func RegenerateHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RegenerateRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, badRequest(err))
			return
		}

		l := logic.NewGenerateLogic(r.Context(), svcCtx)
		resp, err := l.Regenerate(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

// UpdateResultsHandler takes the raw body since its shape depends on the
// framework in the path.
func UpdateResultsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ResultsPath
		if err := httpx.ParsePath(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, badRequest(err))
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, maxEditBytes+1))
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, badRequest(err))
			return
		}
		if len(body) > maxEditBytes {
			httpx.ErrorCtx(r.Context(), w, badRequest(fmt.Errorf("results edit exceeds %d bytes", maxEditBytes)))
			return
		}

		l := logic.NewSessionLogic(r.Context(), svcCtx)
		resp, err := l.UpdateResults(&req, body)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
