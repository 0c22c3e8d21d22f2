package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/daehyun/grant-agent/internal/salvage"
	"github.com/daehyun/grant-agent/internal/types"
)

const (
	convertioConfidence = 0.75
	convertioBaseURL    = "https://api.convertio.co"
)

// ConvertioStrategy converts HWP to text through the Convertio API: start a
// conversion with the file inlined as base64, poll until finished, download.
type ConvertioStrategy struct {
	APIKey          string
	BaseURL         string
	HTTPClient      *http.Client
	PollInterval    time.Duration
	MaxPollAttempts int
}

// NewConvertioStrategy reads the API key from CONVERTIO_API_KEY.
func NewConvertioStrategy() *ConvertioStrategy {
	return &ConvertioStrategy{
		APIKey:          os.Getenv("CONVERTIO_API_KEY"),
		BaseURL:         convertioBaseURL,
		HTTPClient:      defaultHTTPClient,
		PollInterval:    defaultPollInterval,
		MaxPollAttempts: defaultMaxPollAttempts,
	}
}

// Name implements Strategy.
func (s *ConvertioStrategy) Name() string { return "convertio" }

// Available implements Strategy.
func (s *ConvertioStrategy) Available() bool { return s.APIKey != "" }

// Expensive implements Strategy; base64 inlining quadruples upload cost on
// top of the polling wait.
func (s *ConvertioStrategy) Expensive() bool { return true }

type convertioStart struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

type convertioStatus struct {
	Data struct {
		Step    string `json:"step"`
		Message string `json:"message"`
	} `json:"data"`
}

// Extract implements Strategy.
func (s *ConvertioStrategy) Extract(ctx context.Context, src *Source) (*types.ExtractionResult, error) {
	id, err := s.start(ctx, src)
	if err != nil {
		return nil, err
	}

	if err := s.poll(ctx, id); err != nil {
		return nil, err
	}

	text, err := s.download(ctx, id)
	if err != nil {
		return nil, err
	}

	return &types.ExtractionResult{
		Success:    true,
		Method:     types.MethodConvertio,
		Text:       text,
		Confidence: convertioConfidence,
		Analysis:   salvage.Analyze(text),
	}, nil
}

func (s *ConvertioStrategy) start(ctx context.Context, src *Source) (string, error) {
	payload := map[string]any{
		"apikey":       s.APIKey,
		"input":        "upload",
		"inputformat":  "hwp",
		"outputformat": "txt",
		"file":         base64.StdEncoding.EncodeToString(src.Data),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/convert", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return "", &ConversionError{Service: "convertio", Message: "start request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ConversionError{Service: "convertio", Message: fmt.Sprintf("start returned %d", resp.StatusCode)}
	}

	var start convertioStart
	if err := json.NewDecoder(resp.Body).Decode(&start); err != nil {
		return "", &ConversionError{Service: "convertio", Message: "start response unparsable", Cause: err}
	}
	if start.Status != "ok" {
		return "", &ConversionError{Service: "convertio", Message: start.Error}
	}
	return start.Data.ID, nil
}

func (s *ConvertioStrategy) poll(ctx context.Context, id string) error {
	for attempt := 0; attempt < s.MaxPollAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/convert/"+id+"/status", nil)
		if err != nil {
			return err
		}

		resp, err := s.httpClient().Do(req)
		if err != nil {
			return &ConversionError{Service: "convertio", Message: "status poll failed", Cause: err}
		}

		var status convertioStatus
		err = json.NewDecoder(resp.Body).Decode(&status)
		_ = resp.Body.Close()
		if err != nil {
			return &ConversionError{Service: "convertio", Message: "status response unparsable", Cause: err}
		}

		switch status.Data.Step {
		case "finish":
			return nil
		case "error":
			return &ConversionError{Service: "convertio", Message: status.Data.Message}
		}

		if err := waitPoll(ctx, s.PollInterval); err != nil {
			return err
		}
	}

	return &TimeoutError{Service: "convertio", Attempts: s.MaxPollAttempts}
}

func (s *ConvertioStrategy) download(ctx context.Context, id string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/convert/"+id+"/dl", nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return "", &ConversionError{Service: "convertio", Message: "download failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ConversionError{Service: "convertio", Message: fmt.Sprintf("download returned %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ConversionError{Service: "convertio", Message: "download read failed", Cause: err}
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", &ConversionError{Service: "convertio", Message: "downloaded text is empty"}
	}
	return text, nil
}

func (s *ConvertioStrategy) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return defaultHTTPClient
}
