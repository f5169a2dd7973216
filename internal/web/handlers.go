// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"contact-splitter/internal/contact"
	"contact-splitter/internal/formatters"
	"contact-splitter/internal/titles"
	"contact-splitter/internal/version"
)

const (
	maxBodyBytes   = 64 * 1024
	maxBatchInputs = 1000
)

// Service is the pipeline consumed by the HTTP API.
type Service interface {
	Process(ctx context.Context, raw string) *contact.Contact
	ProcessBatch(ctx context.Context, names []string, workers int) ([]*contact.Contact, error)
	RegenerateLetterSalutation(ctx context.Context, c *contact.Contact) *contact.Contact
	Titles() map[string]string
	LookupTitle(token string) (short string, ok bool, suggestion string)
	SaveTitle(long, short string) (bool, error)
	DeleteTitle(long string) (bool, error)
	ResetTitles() error
	AddToHistory(c *contact.Contact) int
	History() []*contact.Contact
}

// Handler serves the contact API.
type Handler struct {
	service Service
	workers int
	log     *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(service Service, workers int, logger *slog.Logger) *Handler {
	if workers < 1 {
		workers = 1
	}
	return &Handler{service: service, workers: workers, log: logger}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Post("/parse", h.HandleParse)
	r.Post("/parse/batch", h.HandleParseBatch)
	r.Post("/salutation", h.HandleSalutation)

	r.Get("/titles", h.HandleListTitles)
	r.Post("/titles/reset", h.HandleResetTitles)
	r.Get("/titles/{long}", h.HandleLookupTitle)
	r.Put("/titles/{long}", h.HandleSaveTitle)
	r.Delete("/titles/{long}", h.HandleDeleteTitle)

	r.Get("/history", h.HandleListHistory)
	r.Post("/history", h.HandleAddHistory)
}

// ParseRequest is the body of POST /parse.
type ParseRequest struct {
	Input string `json:"input"`
	// Save adds the result to the history.
	Save bool `json:"save"`
}

// BatchRequest is the body of POST /parse/batch.
type BatchRequest struct {
	Inputs []string `json:"inputs"`
	// Format selects a registered formatter. Empty returns plain JSON contacts.
	Format  string `json:"format"`
	Verbose bool   `json:"verbose"`
}

// SaveTitleRequest is the body of PUT /titles/{long}.
type SaveTitleRequest struct {
	Short string `json:"short"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// HandleParse implements POST /parse.
func (h *Handler) HandleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !h.decode(w, r, &req) {
		return
	}

	c := h.service.Process(r.Context(), req.Input)
	if req.Save {
		h.service.AddToHistory(c)
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleParseBatch implements POST /parse/batch.
func (h *Handler) HandleParseBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Inputs) > maxBatchInputs {
		writeError(w, http.StatusRequestEntityTooLarge, "too many inputs")
		return
	}
	if req.Format != "" {
		if _, ok := formatters.Get(req.Format); !ok {
			writeError(w, http.StatusBadRequest, "unsupported format: "+req.Format)
			return
		}
	}

	contacts, err := h.service.ProcessBatch(r.Context(), req.Inputs, h.workers)
	if err != nil {
		h.log.WarnContext(r.Context(), "batch request aborted", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "request canceled")
		return
	}

	if req.Format == "" {
		writeJSON(w, http.StatusOK, contacts)
		return
	}

	content, mimeType, filename, err := formatters.ExportForWeb(req.Format, contacts, formatters.FormatterOptions{
		Verbose: req.Verbose,
		NoColor: true,
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to format batch", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to format results")
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(content))
}

// HandleSalutation implements POST /salutation: the body is an edited
// contact, the response the contact with a regenerated letter salutation.
func (h *Handler) HandleSalutation(w http.ResponseWriter, r *http.Request) {
	var c contact.Contact
	if !h.decode(w, r, &c) {
		return
	}
	writeJSON(w, http.StatusOK, h.service.RegenerateLetterSalutation(r.Context(), &c))
}

// HandleListTitles implements GET /titles.
func (h *Handler) HandleListTitles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"titles": h.service.Titles()})
}

// HandleLookupTitle implements GET /titles/{long}.
func (h *Handler) HandleLookupTitle(w http.ResponseWriter, r *http.Request) {
	long, ok := pathTitle(w, r)
	if !ok {
		return
	}

	short, found, suggestion := h.service.LookupTitle(long)
	if !found {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "unknown title", Suggestion: suggestion})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"long": long, "short": short})
}

// HandleSaveTitle implements PUT /titles/{long}.
func (h *Handler) HandleSaveTitle(w http.ResponseWriter, r *http.Request) {
	long, ok := pathTitle(w, r)
	if !ok {
		return
	}
	var req SaveTitleRequest
	if !h.decode(w, r, &req) {
		return
	}

	changed, err := h.service.SaveTitle(long, req.Short)
	switch {
	case errors.Is(err, titles.ErrEmptyKey), errors.Is(err, titles.ErrEmptyValue):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "failed to save title", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to save title")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

// HandleDeleteTitle implements DELETE /titles/{long}.
func (h *Handler) HandleDeleteTitle(w http.ResponseWriter, r *http.Request) {
	long, ok := pathTitle(w, r)
	if !ok {
		return
	}

	removed, err := h.service.DeleteTitle(long)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to delete title", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to delete title")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "unknown title")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleResetTitles implements POST /titles/reset.
func (h *Handler) HandleResetTitles(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetTitles(); err != nil {
		h.log.ErrorContext(r.Context(), "failed to reset titles", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to reset titles")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListHistory implements GET /history.
func (h *Handler) HandleListHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.History())
}

// HandleAddHistory implements POST /history.
func (h *Handler) HandleAddHistory(w http.ResponseWriter, r *http.Request) {
	var c contact.Contact
	if !h.decode(w, r, &c) {
		return
	}
	c.Normalize()
	size := h.service.AddToHistory(&c)
	writeJSON(w, http.StatusCreated, map[string]int{"size": size})
}

// HandleHealth implements GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	info := version.Full()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "contact-splitter",
		"version":   info["version"],
		"build_info": map[string]string{
			"commit":     info["commit"],
			"build_date": info["buildDate"],
			"go_version": info["goVersion"],
			"platform":   info["platform"],
		},
	})
}

// HandleFormats implements GET /formats.
func (h *Handler) HandleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, formatters.GetSupportedFormats())
}

// decode reads a JSON body into dst, writing a 400 response on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.log.WarnContext(r.Context(), "failed to decode request",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// pathTitle returns the unescaped {long} URL parameter.
func pathTitle(w http.ResponseWriter, r *http.Request) (string, bool) {
	long, err := url.PathUnescape(chi.URLParam(r, "long"))
	if err != nil || strings.TrimSpace(long) == "" {
		writeError(w, http.StatusBadRequest, "invalid title")
		return "", false
	}
	return long, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
