package logic

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"stratiq-api/internal/svc"
	"stratiq-api/internal/types"
	"stratiq-api/pkg/deck/pptx"
	"stratiq-api/pkg/export"
)

// Export formats.
const (
	FormatPPTX = "pptx"
	FormatJSON = "json"
	FormatSWOT = "swot"
	FormatXLSX = "xlsx"
)

type ExportLogic struct {
	base
}

func NewExportLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ExportLogic {
	return &ExportLogic{base: newBase(ctx, svcCtx)}
}

func (l *ExportLogic) Export(req *types.ExportRequest) (*types.File, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	s, err := l.load(req.ID)
	if err != nil {
		return nil, err
	}

	var (
		data        []byte
		name        string
		contentType string
	)
	now := l.now()
	switch format {
	case FormatPPTX:
		data, name, err = l.svcCtx.Deck.Render(s.State)
		contentType = pptx.ContentType
	case FormatJSON:
		data, name, err = export.JSON(s.State, now)
		contentType = export.MimeJSON
	case FormatSWOT:
		data, name, err = export.SWOTJSON(s.State, now)
		contentType = export.MimeJSON
	case FormatXLSX:
		data, name, err = export.Workbook(s.State, now)
		contentType = export.MimeXLSX
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnknownFormat, req.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}

	l.Infow("export rendered",
		logx.Field("session", s.ID),
		logx.Field("format", format),
		logx.Field("bytes", len(data)))
	return &types.File{Name: name, ContentType: contentType, Data: data}, nil
}
