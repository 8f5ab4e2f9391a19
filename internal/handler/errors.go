package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"

	"stratiq-api/internal/logic"
	"stratiq-api/internal/session"
	"stratiq-api/pkg/strategy"
	"stratiq-api/pkg/wizard"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// requestError marks request decoding failures as client errors.
type requestError struct{ err error }

func (e requestError) Error() string { return e.err.Error() }
func (e requestError) Unwrap() error { return e.err }

func badRequest(err error) error { return requestError{err: err} }

var clientErrors = []error{
	wizard.ErrMissingRequired,
	wizard.ErrNoFrameworks,
	wizard.ErrUnknownFramework,
	wizard.ErrMissingTitle,
	wizard.ErrInvalidEdit,
	strategy.ErrUnknownFramework,
	logic.ErrUnknownAction,
	logic.ErrUnknownFormat,
}

// ErrorHandler maps errors onto status codes: unknown sessions are 404,
// validation failures 400 with their message, anything else 500.
func ErrorHandler(ctx context.Context, err error) (int, any) {
	if errors.Is(err, session.ErrNotFound) {
		return http.StatusNotFound, ErrorBody{Error: err.Error()}
	}
	var reqErr requestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, ErrorBody{Error: err.Error()}
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, ErrorBody{Error: err.Error()}
		}
	}
	logx.WithContext(ctx).Errorw("request failed", logx.Field("error", err.Error()))
	return http.StatusInternalServerError, ErrorBody{Error: http.StatusText(http.StatusInternalServerError)}
}
