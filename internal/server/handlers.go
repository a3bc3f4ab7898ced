package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/clevacompass/pkg/buildinfo"
	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/compose"
	"github.com/matzehuels/clevacompass/pkg/errors"
	cio "github.com/matzehuels/clevacompass/pkg/io"
	"github.com/matzehuels/clevacompass/pkg/observability"
	"github.com/matzehuels/clevacompass/pkg/render"
)

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

type paletteResponse struct {
	Colors []compass.Color `json:"colors"`
	Pool   []compass.Color `json:"pool"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, paletteResponse{
		Colors: s.cfg.Palette.Colors(),
		Pool:   s.cfg.Palette.Pool(),
	})
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	tex, err := s.compose(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.FormatTeX.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(tex)))
	_, _ = w.Write([]byte(tex))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	f, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id := uuid.New().String()
	w.Header().Set("X-Render-ID", id)

	tex, err := s.compose(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.cfg.Renderer.Render(r.Context(), tex, f)
	if err != nil {
		s.cfg.Logger.Warn("render failed", "id", id, "format", f, "err", err)
		s.writeError(w, r, err)
		return
	}
	s.cfg.Logger.Info("rendered", "id", id, "format", f, "bytes", len(data))

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// compose decodes the entry document in the request body and fills the
// template.
func (s *Server) compose(w http.ResponseWriter, r *http.Request) (string, error) {
	entries, err := cio.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return "", errors.Wrap(errors.ErrCodeTooLarge, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return "", err
	}

	start := time.Now()
	tex := compose.Fill(s.cfg.Template, entries, compose.WithPalette(s.cfg.Palette))
	observability.Pipeline().OnCompose(r.Context(), len(entries), len(tex), time.Since(start))
	return tex, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= 500 && status != http.StatusServiceUnavailable {
		s.cfg.Logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidColor, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
