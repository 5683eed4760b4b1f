package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jobquest-lab/backend/pkg/errorx"
	"github.com/jobquest-lab/backend/pkg/xcontext"
)

// Endpoint binds one domain operation to a JSON-over-POST route. Prepare
// packs the process-wide values (database, configs, logger) into the request
// context before the handler runs.
type Endpoint[Request, Response any] struct {
	Path    string
	Prepare func(context.Context) context.Context
	Handle  func(context.Context, *Request) (*Response, error)
}

type response struct {
	Code  int    `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func (e *Endpoint[Request, Response]) Register(mux *http.ServeMux) {
	mux.HandleFunc(e.Path, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		if e.Prepare != nil {
			ctx = e.Prepare(ctx)
		}

		// Authn happens upstream; the gateway forwards the verified user.
		if userID := r.Header.Get("X-User-Id"); userID != "" {
			ctx = xcontext.WithRequestUserID(ctx, userID)
		}

		var req Request
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJson(ctx, w, response{
					Code:  int(errorx.BadRequest),
					Error: "Cannot decode the request body",
				})
				return
			}
		}

		resp, err := e.Handle(ctx, &req)
		if err != nil {
			var errx errorx.Error
			if !errors.As(err, &errx) {
				errx = errorx.Unknown
			}

			writeJson(ctx, w, response{Code: int(errx.Code), Error: errx.Message})
			return
		}

		writeJson(ctx, w, response{Code: 0, Data: resp})
	})
}

func writeJson(ctx context.Context, w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode the response: %v", err)
	}
}
