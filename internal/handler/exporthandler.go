package handler

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"stratiq-api/internal/logic"
	"stratiq-api/internal/svc"
	"stratiq-api/internal/types"
)

func ExportHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ExportRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, badRequest(err))
			return
		}

		l := logic.NewExportLogic(r.Context(), svcCtx)
		file, err := l.Export(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", attachment(file.Name))
		w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(file.Data); err != nil {
			logx.WithContext(r.Context()).Errorw("write export failed", logx.Field("error", err.Error()))
		}
	}
}

// attachment builds a Content-Disposition value; non-ASCII names use the
// RFC 2231 filename* form.
func attachment(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}
