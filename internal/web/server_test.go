// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"contact-splitter/internal/config"
	"contact-splitter/internal/contact"
	"contact-splitter/internal/core"
	"contact-splitter/internal/metrics"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type ServerSuite struct {
	suite.Suite
	server *httptest.Server
}

func (s *ServerSuite) SetupTest() {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	svc := core.NewService(core.ServiceConfig{Metrics: m, Logger: discardLogger()})
	ws := NewWebServer(svc, Options{
		Gatherer: registry,
		Metrics:  m,
		Workers:  2,
		Logger:   discardLogger(),
	})
	s.server = httptest.NewServer(ws.Handler())
}

func (s *ServerSuite) TearDownTest() {
	s.server.Close()
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) do(method, path string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *ServerSuite) decode(resp *http.Response, dst any) {
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(dst))
}

func (s *ServerSuite) TestParse() {
	resp := s.do(http.MethodPost, "/parse", ParseRequest{Input: "Herr Prof. Dr. Hans-Peter Müller"})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotEmpty(resp.Header.Get("X-Request-ID"))

	var c contact.Contact
	s.decode(resp, &c)
	s.Equal("Herr", c.Salutation)
	s.Equal("Prof. Dr.", c.Titles)
	s.Equal("Hans-Peter", c.FirstName)
	s.Equal("Müller", c.LastName)
	s.Equal("Sehr geehrter Herr Prof. Dr. Müller", c.LetterSalutation)
}

func (s *ServerSuite) TestParse_InvalidInputIsFlagged() {
	resp := s.do(http.MethodPost, "/parse", ParseRequest{Input: ""})
	s.Equal(http.StatusOK, resp.StatusCode)

	var c contact.Contact
	s.decode(resp, &c)
	s.True(c.NeedsReview)
}

func (s *ServerSuite) TestParse_BadBody() {
	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/parse", strings.NewReader("{"))
	s.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *ServerSuite) TestParse_RejectsNonJSON() {
	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/parse", strings.NewReader("input=x"))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnsupportedMediaType, resp.StatusCode)
}

func (s *ServerSuite) TestRequestIDIsPropagated() {
	req, err := http.NewRequest(http.MethodGet, s.server.URL+"/health", nil)
	s.Require().NoError(err)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal("req-123", resp.Header.Get("X-Request-ID"))
}

func (s *ServerSuite) TestParseBatch_JSON() {
	resp := s.do(http.MethodPost, "/parse/batch", BatchRequest{Inputs: []string{"Frau Anna Schmidt", "Monsieur Heimer"}})
	s.Equal(http.StatusOK, resp.StatusCode)

	var contacts []contact.Contact
	s.decode(resp, &contacts)
	s.Require().Len(contacts, 2)
	s.Equal("Schmidt", contacts[0].LastName)
	s.Equal("Monsieur Heimer", contacts[1].LetterSalutation)
}

func (s *ServerSuite) TestParseBatch_CSV() {
	resp := s.do(http.MethodPost, "/parse/batch", BatchRequest{Inputs: []string{"Frau Anna Schmidt"}, Format: "csv"})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("text/csv", resp.Header.Get("Content-Type"))
	s.Contains(resp.Header.Get("Content-Disposition"), "contacts.csv")

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "Frau,,Anna,Schmidt,w,de")
}

func (s *ServerSuite) TestParseBatch_UnknownFormat() {
	resp := s.do(http.MethodPost, "/parse/batch", BatchRequest{Inputs: []string{"x"}, Format: "xml"})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *ServerSuite) TestSalutation() {
	edited := contact.Contact{FirstName: "Anna", LastName: "Rossi", Gender: contact.GenderFemale, Language: "it"}
	resp := s.do(http.MethodPost, "/salutation", edited)
	s.Equal(http.StatusOK, resp.StatusCode)

	var c contact.Contact
	s.decode(resp, &c)
	s.Equal("Gentile Signora Rossi", c.LetterSalutation)
	s.False(c.NeedsReview)
}

func (s *ServerSuite) TestTitlesLifecycle() {
	resp := s.do(http.MethodPut, "/titles/magister", SaveTitleRequest{Short: "Mag."})
	s.Equal(http.StatusOK, resp.StatusCode)
	var saved map[string]bool
	s.decode(resp, &saved)
	s.True(saved["changed"])

	resp = s.do(http.MethodGet, "/titles/magister", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	var found map[string]string
	s.decode(resp, &found)
	s.Equal("Mag.", found["short"])

	resp = s.do(http.MethodGet, "/titles", nil)
	var listing struct {
		Titles map[string]string `json:"titles"`
	}
	s.decode(resp, &listing)
	s.Equal("Mag.", listing.Titles["magister"])

	resp = s.do(http.MethodDelete, "/titles/magister", nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodDelete, "/titles/magister", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.do(http.MethodPost, "/titles/reset", nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
}

func (s *ServerSuite) TestSaveTitle_EmptyShort() {
	resp := s.do(http.MethodPut, "/titles/magister", SaveTitleRequest{})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *ServerSuite) TestLookupTitle_Suggestion() {
	resp := s.do(http.MethodGet, "/titles/doktr", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	var e ErrorResponse
	s.decode(resp, &e)
	s.Equal("doktor", e.Suggestion)
}

func (s *ServerSuite) TestHistory() {
	s.do(http.MethodPost, "/parse", ParseRequest{Input: "Frau Anna Schmidt", Save: true})
	s.do(http.MethodPost, "/parse", ParseRequest{Input: "Herr Hans Huber"})

	resp := s.do(http.MethodPost, "/history", contact.Contact{FirstName: "Max", LastName: "Muster", Gender: "m"})
	s.Equal(http.StatusCreated, resp.StatusCode)

	resp = s.do(http.MethodGet, "/history", nil)
	var history []contact.Contact
	s.decode(resp, &history)
	s.Require().Len(history, 2)
	s.Equal("Schmidt", history[0].LastName)
	s.Equal("Muster", history[1].LastName)
}

func (s *ServerSuite) TestHealth() {
	resp := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var health map[string]any
	s.decode(resp, &health)
	s.Equal("healthy", health["status"])
	s.Equal("contact-splitter", health["service"])
}

func (s *ServerSuite) TestFormats() {
	resp := s.do(http.MethodGet, "/formats", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var formats []map[string]string
	s.decode(resp, &formats)
	s.Len(formats, 4)
}

func (s *ServerSuite) TestMetrics() {
	s.do(http.MethodPost, "/parse", ParseRequest{Input: "Herr Hans Huber"})

	resp := s.do(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "contact_splitter_contacts_parsed_total")
	s.Contains(string(body), `endpoint="POST /parse"`)
}

func TestRecovery(t *testing.T) {
	handler := Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWebServer_ServeAndShutdown(t *testing.T) {
	svc := core.NewService(core.ServiceConfig{Logger: discardLogger()})
	ws := NewWebServer(svc, Options{
		Server: config.ServerConfig{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second},
		Logger: discardLogger(),
	})

	addr, err := ws.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Serve(ctx) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/health", addr))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(fmt.Sprintf("http://%s/metrics", addr))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
