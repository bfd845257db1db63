package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/skyforge/astropress/pkg/buildinfo"
	"github.com/skyforge/astropress/pkg/catalog"
	"github.com/skyforge/astropress/pkg/errors"
	"github.com/skyforge/astropress/pkg/kit"
	"github.com/skyforge/astropress/pkg/latitude"
	"github.com/skyforge/astropress/pkg/parts"
)

// dataResponse is the JSON envelope for successful list responses.
type dataResponse struct {
	Data any `json:"data"`
}

// errorResponse is the JSON envelope for failed requests.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	langs, err := catalog.Languages()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dataResponse{Data: langs})
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := catalog.SearchLocations(r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dataResponse{Data: locs})
}

// handleBooklet renders one booklet on demand. Every query parameter is
// optional and falls back to the build defaults.
func (s *Server) handleBooklet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat := latitude.Default
	if raw := q.Get("latitude"); raw != "" {
		parsed, err := latitude.Parse(raw)
		if err != nil {
			s.writeError(w, err)
			return
		}
		lat = parsed
	}

	lang := q.Get("language")
	if lang == "" {
		lang = kit.DefaultLanguage
	}
	if err := catalog.ValidateLanguage(lang); err != nil {
		s.writeError(w, err)
		return
	}

	kitType := q.Get("type")
	if kitType == "" {
		kitType = parts.TypeFull
	}
	if err := parts.ValidateType(kitType); err != nil {
		s.writeError(w, err)
		return
	}

	format := q.Get("format")
	if format == "" {
		format = parts.FormatPNG
	}
	if err := parts.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	comb := kit.Combination{Latitude: lat, Language: lang, Type: kitType, Format: format}
	data, fromCache, err := s.runner.RenderBooklet(r.Context(), comb, "", s.ttl)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/x-tex; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", comb.BookletName()))
	if fromCache {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write(data)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	s.writeJSON(w, statusFor(code), errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

// statusFor maps error codes to HTTP statuses. Input validation failures
// are the client's fault; a malformed bundled skeleton is ours.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidLatitude,
		errors.ErrCodeInvalidLanguage,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidType,
		errors.ErrCodeInvalidTheme,
		errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeMissingParameter:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
