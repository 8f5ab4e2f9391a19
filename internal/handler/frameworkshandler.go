package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"stratiq-api/internal/logic"
	"stratiq-api/internal/svc"
)

func FrameworksHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewFrameworksLogic(r.Context(), svcCtx)
		resp, err := l.Frameworks()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
