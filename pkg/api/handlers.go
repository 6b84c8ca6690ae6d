package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/workflowgraph/pkg/errors"
	"github.com/matzehuels/workflowgraph/pkg/graph"
	"github.com/matzehuels/workflowgraph/pkg/pipeline"
)

// HeaderCache reports whether a response was served from the cache.
const HeaderCache = "X-Cache"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := graph.MarshalLayout(l)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode layout"))
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentType(pipeline.FormatJSON))
	w.Header().Set(HeaderCache, cacheHeader(hit))
	_, _ = w.Write(data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	l, layoutHit, err := s.runner.LayoutWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifacts, renderHit, err := s.runner.RenderWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set(HeaderCache, cacheHeader(layoutHit && renderHit))
	_, _ = w.Write(artifacts[format])
}

func (s *Server) readGraph(w http.ResponseWriter, r *http.Request) (graph.Graph, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	g, err := graph.ReadGraph(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return graph.Graph{}, errTooLarge{limit: tooLarge.Limit}
		}
		return graph.Graph{}, err
	}
	return g, nil
}

// options derives per-request pipeline options from the server defaults.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		VizType: s.base.VizType,
		Layout:  s.base.Layout,
		Theme:   s.base.Theme,
		Scale:   s.base.Scale,
		Hover:   s.base.Hover,
		Logger:  s.logger.With("request_id", RequestID(r.Context())),
	}
	if v := q.Get("viz"); v != "" {
		if err := pipeline.ValidateVizType(v); err != nil {
			return opts, err
		}
		opts.VizType = v
	}
	opts.Title = q.Get("title")

	var err error
	if opts.Refresh, err = boolParam(q.Get("refresh"), false); err != nil {
		return opts, err
	}
	if opts.Detailed, err = boolParam(q.Get("detailed"), false); err != nil {
		return opts, err
	}
	if opts.Hover, err = boolParam(q.Get("hover"), opts.Hover); err != nil {
		return opts, err
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number, got %q", v)
		}
		opts.Scale = scale
	}
	return opts, nil
}

func boolParam(v string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "expected a boolean, got %q", v)
	}
	return b, nil
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// =============================================================================
// Error Responses
// =============================================================================

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

type errTooLarge struct{ limit int64 }

func (e errTooLarge) Error() string {
	return "request body exceeds " + strconv.FormatInt(e.limit, 10) + " bytes"
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	if _, ok := err.(errTooLarge); ok {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidVizType:
		return http.StatusBadRequest
	case errors.ErrCodeMissingStartNode, errors.ErrCodeUnknownNode, errors.ErrCodeDegenerateGeometry:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	switch {
	case status == http.StatusRequestEntityTooLarge:
		code = "REQUEST_TOO_LARGE"
	case code == "":
		code = string(errors.ErrCodeInternal)
	}

	msg := errors.UserMessage(err)
	if status >= 500 {
		s.logger.Error("request failed", "request_id", RequestID(r.Context()), "error", err)
		if status == http.StatusInternalServerError {
			msg = "internal server error"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Code:      code,
		Message:   msg,
		RequestID: RequestID(r.Context()),
	})
}
