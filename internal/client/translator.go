package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"techtranslator/internal/domain"

	"go.uber.org/zap"
)

// TranslatorClient talks to the translation service over HTTP.
// It performs exactly one request per call: no retries, no caching.
type TranslatorClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTranslatorClient creates a client for the service at baseURL.
// A nil httpClient means http.DefaultClient.
func NewTranslatorClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *TranslatorClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TranslatorClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.Named("TranslatorClient"),
	}
}

type translateRequest struct {
	Text               string `json:"text"`
	SourceLanguage     string `json:"source_language"`
	TargetLanguage     string `json:"target_language"`
	PreserveFormatting bool   `json:"preserve_formatting"`
}

type translateResponse struct {
	TranslatedText  *string  `json:"translated_text"`
	TranslationTime *float64 `json:"translation_time"`
	Error           string   `json:"error"`
}

// HealthStatus is the answer of the health endpoint
type HealthStatus struct {
	Status          string `json:"status"`
	AzureConfigured bool   `json:"azure_configured"`
}

// Translate sends text to the translation service.
// Every failure is returned as *domain.TranslationError.
func (c *TranslatorClient) Translate(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationResult, error) {
	log := c.logger.With(
		zap.String("source_lang", req.SourceLang),
		zap.String("target_lang", req.TargetLang),
		zap.Int("text_length", len(req.Text)),
	)

	body, err := json.Marshal(translateRequest{
		Text:               req.Text,
		SourceLanguage:     req.SourceLang,
		TargetLanguage:     req.TargetLang,
		PreserveFormatting: req.PreserveFormatting,
	})
	if err != nil {
		return nil, &domain.TranslationError{Message: "failed to encode translation request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return nil, &domain.TranslationError{Message: "failed to create translation request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Error("Translation service unreachable", zap.Error(err))
		return nil, &domain.TranslationError{Message: "translation service unreachable", Err: err}
	}
	defer resp.Body.Close()

	var payload translateResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fmt.Sprintf("translation failed with status %d", resp.StatusCode)
		if decodeErr == nil && payload.Error != "" {
			message = payload.Error
		}
		log.Warn("Translation service returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("message", message),
		)
		return nil, &domain.TranslationError{Message: message, StatusCode: resp.StatusCode}
	}

	if decodeErr != nil {
		log.Error("Failed to decode translation response", zap.Error(decodeErr))
		return nil, &domain.TranslationError{
			Message:    "malformed response from translation service",
			StatusCode: resp.StatusCode,
			Err:        decodeErr,
		}
	}
	if payload.TranslatedText == nil {
		log.Error("Translation response has no translated_text")
		return nil, &domain.TranslationError{
			Message:    "malformed response from translation service",
			StatusCode: resp.StatusCode,
		}
	}

	result := &domain.TranslationResult{TranslatedText: *payload.TranslatedText}
	if payload.TranslationTime != nil && *payload.TranslationTime > 0 {
		result.ElapsedSeconds = *payload.TranslationTime
	}

	log.Debug("Translation received", zap.Float64("elapsed_seconds", result.ElapsedSeconds))
	return result, nil
}

// Health queries the service health endpoint
func (c *TranslatorClient) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.getJSON(ctx, "/health", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Languages returns the language codes the service supports, mapped to display names
func (c *TranslatorClient) Languages(ctx context.Context) (map[string]string, error) {
	languages := make(map[string]string)
	if err := c.getJSON(ctx, "/languages", &languages); err != nil {
		return nil, err
	}
	return languages, nil
}

func (c *TranslatorClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create GET %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("GET %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode GET %s response: %w", path, err)
	}
	return nil
}
