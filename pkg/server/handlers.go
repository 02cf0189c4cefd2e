package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/umlgraph/pkg/buildinfo"
	"github.com/matzehuels/umlgraph/pkg/diagram"
	uerrors "github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/parser"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	text, err := s.readSource(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = s.cfg.DefaultFormat
	}
	compact, _ := strconv.ParseBool(r.URL.Query().Get("compact"))

	res, err := s.runner.Execute(r.Context(), text, pipeline.Options{
		Format:  format,
		Compact: compact,
		TTL:     s.cfg.TTL,
		Logger:  loggerFrom(r.Context(), s.logger),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(res.Format))
	w.Header().Set("X-Source-Hash", res.SourceHash)
	w.Header().Set("X-Dropped-Lines", strconv.Itoa(res.Stats.Dropped))
	if res.CacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact)
}

type handlesResponse struct {
	Sources []string `json:"sources"`
	Targets []string `json:"targets"`
}

func (s *Server) handleHandles(w http.ResponseWriter, r *http.Request) {
	text, err := s.readSource(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	h := diagram.ComputeHandles(parser.Parse(text))
	resp := handlesResponse{Sources: h.SourceIDs, Targets: h.TargetIDs}
	if resp.Sources == nil {
		resp.Sources = []string{}
	}
	if resp.Targets == nil {
		resp.Targets = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) readSource(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", uerrors.New(uerrors.ErrCodeInputTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return "", uerrors.Wrap(uerrors.ErrCodeInvalidInput, err, "read body")
	}
	text := string(body)
	if err := uerrors.ValidateSource(text, s.cfg.MaxBodyBytes); err != nil {
		return "", err
	}
	return text, nil
}

type errorResponse struct {
	Code      uerrors.Code `json:"code"`
	Message   string       `json:"message"`
	RequestID string       `json:"request_id,omitempty"`
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code uerrors.Code) int {
	switch code {
	case uerrors.ErrCodeInvalidInput, uerrors.ErrCodeInvalidFormat, uerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case uerrors.ErrCodeInputTooLarge:
		return http.StatusRequestEntityTooLarge
	case uerrors.ErrCodeNotFound, uerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case uerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case uerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case uerrors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := uerrors.GetCode(err)
	if code == "" {
		code = uerrors.ErrCodeInternal
	}
	status := statusFor(code)
	msg := uerrors.UserMessage(err)
	if status >= 500 {
		loggerFrom(r.Context(), s.logger).Error("request failed", "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: RequestIDFrom(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
