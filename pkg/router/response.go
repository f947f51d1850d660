package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/xcontext"
)

// Redirector is implemented by responses which redirect the client instead of
// returning a json body.
type Redirector interface {
	RedirectURL() string
}

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Field string `json:"field,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	var errx errorx.Error
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
			Field: errx.Field,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func handleResponse() CloserFunc {
	return func(ctx context.Context) {
		w := xcontext.HTTPWriter(ctx)
		if err := xcontext.Error(ctx); err != nil {
			if err := WriteJson(w, newErrorResponse(err)); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
			}
			return
		}

		resp := xcontext.GetResponse(ctx)
		if redirector, ok := resp.(Redirector); ok {
			http.Redirect(w, xcontext.HTTPRequest(ctx), redirector.RedirectURL(), http.StatusFound)
			return
		}

		if err := WriteJson(w, newResponse(resp)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
		}
	}
}

func WriteJson(w http.ResponseWriter, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
