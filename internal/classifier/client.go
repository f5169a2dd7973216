// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"contact-splitter/internal/contact"
	"contact-splitter/internal/metrics"
	"contact-splitter/internal/resilience"
	"contact-splitter/internal/security"
)

// ErrEmptyResponse is returned when the model answered without content.
var ErrEmptyResponse = errors.New("classifier: empty response")

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	maxErrorBody   = 512
)

const (
	genderPrompt = "You are an assistant that classifies a first name as male, female, or unknown. " +
		"Answer with 'm', 'w', or '-' exactly."
	languagePrompt = "You are an assistant that detects the language or origin of a name. " +
		"Answer with one of: de, en, fr, it, es, or '-' if unknown."
	salutationPrompt = "You are a formal correspondence assistant. Given the following contact details, " +
		"generate a polite letter salutation in the appropriate language and style. " +
		"Answer with the salutation only."
)

// Options configures a Client. Zero values select defaults.
type Options struct {
	BaseURL    string
	Model      string
	APIKey     string
	Timeout    time.Duration
	Retry      resilience.RetryConfig
	HTTPClient *http.Client
	Breaker    *resilience.CircuitBreaker
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	baseURL    string
	model      string
	apiKey     *security.Secret
	httpClient *http.Client
	retry      resilience.RetryConfig
	breaker    *resilience.CircuitBreaker
	metrics    *metrics.Metrics
	log        *slog.Logger
}

// New creates a Client.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Retry.Multiplier < 1 {
		opts.Retry.Multiplier = 2.0
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	logger := opts.Logger.With("adapter", "classifier")

	if opts.Breaker == nil {
		cfg := resilience.DefaultCircuitBreakerConfig("classifier")
		cfg.OnStateChange = func(name string, from, to resilience.CircuitBreakerState) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		}
		opts.Breaker = resilience.NewCircuitBreaker(cfg)
	}

	apiKey := security.NewSecret(opts.APIKey)
	logger.Debug("classifier configured",
		slog.String("base_url", opts.BaseURL),
		slog.String("model", opts.Model),
		slog.Any("api_key", apiKey))

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		model:      opts.Model,
		apiKey:     apiKey,
		httpClient: opts.HTTPClient,
		retry:      opts.Retry,
		breaker:    opts.Breaker,
		metrics:    opts.Metrics,
		log:        logger,
	}
}

// DetectGender asks the model for the gender of a first name.
func (c *Client) DetectGender(ctx context.Context, name string) contact.Gender {
	name = strings.TrimSpace(name)
	if name == "" {
		return contact.GenderUnknown
	}

	answer, err := c.ask(ctx, "gender", genderPrompt, "First name: "+name)
	if err != nil {
		return contact.GenderUnknown
	}
	return parseGender(answer)
}

// DetectLanguage asks the model for the language of a full name.
func (c *Client) DetectLanguage(ctx context.Context, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	answer, err := c.ask(ctx, "language", languagePrompt, "Name: "+name)
	if err != nil {
		return ""
	}
	return parseLanguage(answer)
}

// GenerateLetterSalutation asks the model for a letter greeting.
func (c *Client) GenerateLetterSalutation(ctx context.Context, ct *contact.Contact) string {
	var details []string
	for _, field := range []struct{ label, value string }{
		{"Salutation", ct.Salutation},
		{"Titles", ct.Titles},
		{"First name", ct.FirstName},
		{"Last name", ct.LastName},
		{"Language", ct.Language},
	} {
		if field.value != "" {
			details = append(details, field.label+": "+field.value)
		}
	}

	answer, err := c.ask(ctx, "salutation", salutationPrompt,
		strings.Join(details, "\n")+"\n\nGenerate the salutation:")
	if err != nil {
		return DefaultLetterSalutation
	}

	answer = strings.Trim(answer, " \t\r\n\"'")
	if answer == "" {
		return DefaultLetterSalutation
	}
	return answer
}

// ask runs one completion with retries and records the outcome. Errors are
// logged here; callers only map them to defaults.
func (c *Client) ask(ctx context.Context, operation, system, user string) (string, error) {
	start := time.Now()

	retry := c.retry
	retry.OnRetry = func(attempt int, err error) {
		c.log.WarnContext(ctx, "classifier retry",
			slog.String("operation", operation),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))
	}

	var answer string
	err := resilience.RetryWithCircuitBreaker(ctx, retry, c.breaker, func(ctx context.Context) error {
		var err error
		answer, err = c.complete(ctx, system, user)
		return err
	})

	outcome := "ok"
	if err != nil {
		outcome = "error"
		c.log.ErrorContext(ctx, "classifier request failed",
			slog.String("operation", operation),
			slog.String("error_type", resilience.ClassifyError(err).Type.String()),
			slog.String("error", err.Error()))
	}
	c.metrics.ObserveClassifier(operation, outcome, time.Since(start).Seconds())

	return answer, err
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete performs a single chat completion request.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("classifier: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("classifier: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if !c.apiKey.IsEmpty() {
		req.Header.Set("Authorization", "Bearer "+c.apiKey.Reveal())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("classifier: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resilience.NewTransientError("classifier: read body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return "", fmt.Errorf("classifier: %w", &resilience.HTTPStatusError{StatusCode: resp.StatusCode, Body: snippet})
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("classifier: decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}
