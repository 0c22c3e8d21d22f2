package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/daehyun/grant-agent/internal/salvage"
	"github.com/daehyun/grant-agent/internal/types"
)

const (
	cloudConvertConfidence = 0.85
	cloudConvertBaseURL    = "https://api.cloudconvert.com/v2"
)

// CloudConvertStrategy converts HWP to text through the CloudConvert job API:
// create job, upload, poll until finished, download the exported artifact.
type CloudConvertStrategy struct {
	APIKey          string
	BaseURL         string
	HTTPClient      *http.Client
	PollInterval    time.Duration
	MaxPollAttempts int
}

// NewCloudConvertStrategy reads the API key from CLOUDCONVERT_API_KEY.
// A missing key makes the strategy unavailable, which the orchestrator
// treats as a skip rather than a failure.
func NewCloudConvertStrategy() *CloudConvertStrategy {
	return &CloudConvertStrategy{
		APIKey:          os.Getenv("CLOUDCONVERT_API_KEY"),
		BaseURL:         cloudConvertBaseURL,
		HTTPClient:      defaultHTTPClient,
		PollInterval:    defaultPollInterval,
		MaxPollAttempts: defaultMaxPollAttempts,
	}
}

// Name implements Strategy.
func (s *CloudConvertStrategy) Name() string { return "cloudconvert" }

// Available implements Strategy.
func (s *CloudConvertStrategy) Available() bool { return s.APIKey != "" }

// Expensive implements Strategy; upload plus polling makes this a poor fit
// for oversized documents.
func (s *CloudConvertStrategy) Expensive() bool { return true }

type cloudConvertTask struct {
	Name   string `json:"name"`
	Result struct {
		Form struct {
			URL        string            `json:"url"`
			Parameters map[string]string `json:"parameters"`
		} `json:"form"`
		Files []struct {
			URL string `json:"url"`
		} `json:"files"`
	} `json:"result"`
}

type cloudConvertJob struct {
	Data struct {
		ID     string             `json:"id"`
		Status string             `json:"status"`
		Tasks  []cloudConvertTask `json:"tasks"`
	} `json:"data"`
}

// Extract implements Strategy.
func (s *CloudConvertStrategy) Extract(ctx context.Context, src *Source) (*types.ExtractionResult, error) {
	job, err := s.createJob(ctx)
	if err != nil {
		return nil, err
	}

	importTask := findTask(job.Data.Tasks, "import-hwp")
	if importTask == nil || importTask.Result.Form.URL == "" {
		return nil, &ConversionError{Service: "cloudconvert", Message: "job has no upload form"}
	}

	if err := s.upload(ctx, importTask, src); err != nil {
		return nil, err
	}

	text, err := s.pollAndDownload(ctx, job.Data.ID)
	if err != nil {
		return nil, err
	}

	return &types.ExtractionResult{
		Success:    true,
		Method:     types.MethodCloudConvert,
		Text:       text,
		Confidence: cloudConvertConfidence,
		Analysis:   salvage.Analyze(text),
	}, nil
}

func (s *CloudConvertStrategy) createJob(ctx context.Context) (*cloudConvertJob, error) {
	payload := map[string]any{
		"tasks": map[string]any{
			"import-hwp": map[string]any{"operation": "import/upload"},
			"convert-hwp": map[string]any{
				"operation":     "convert",
				"input":         "import-hwp",
				"output_format": "txt",
			},
			"export-txt": map[string]any{
				"operation": "export/url",
				"input":     "convert-hwp",
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/jobs", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, &ConversionError{Service: "cloudconvert", Message: "job creation request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ConversionError{Service: "cloudconvert", Message: fmt.Sprintf("job creation returned %d", resp.StatusCode)}
	}

	var job cloudConvertJob
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, &ConversionError{Service: "cloudconvert", Message: "job response unparsable", Cause: err}
	}
	return &job, nil
}

func (s *CloudConvertStrategy) upload(ctx context.Context, task *cloudConvertTask, src *Source) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range task.Result.Form.Parameters {
		_ = w.WriteField(key, value)
	}
	part, err := w.CreateFormFile("file", src.Name)
	if err != nil {
		return err
	}
	if _, err := part.Write(src.Data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, task.Result.Form.URL, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return &ConversionError{Service: "cloudconvert", Message: "upload failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ConversionError{Service: "cloudconvert", Message: fmt.Sprintf("upload returned %d", resp.StatusCode)}
	}
	return nil
}

func (s *CloudConvertStrategy) pollAndDownload(ctx context.Context, jobID string) (string, error) {
	for attempt := 0; attempt < s.MaxPollAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/jobs/"+jobID, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("Authorization", "Bearer "+s.APIKey)

		resp, err := s.httpClient().Do(req)
		if err != nil {
			return "", &ConversionError{Service: "cloudconvert", Message: "status poll failed", Cause: err}
		}

		var job cloudConvertJob
		err = json.NewDecoder(resp.Body).Decode(&job)
		_ = resp.Body.Close()
		if err != nil {
			return "", &ConversionError{Service: "cloudconvert", Message: "status response unparsable", Cause: err}
		}

		switch job.Data.Status {
		case "finished":
			exportTask := findTask(job.Data.Tasks, "export-txt")
			if exportTask == nil || len(exportTask.Result.Files) == 0 {
				return "", &ConversionError{Service: "cloudconvert", Message: "finished job has no export file"}
			}
			return s.download(ctx, exportTask.Result.Files[0].URL)
		case "error":
			return "", &ConversionError{Service: "cloudconvert", Message: "conversion reported error"}
		}

		if err := waitPoll(ctx, s.PollInterval); err != nil {
			return "", err
		}
	}

	return "", &TimeoutError{Service: "cloudconvert", Attempts: s.MaxPollAttempts}
}

func (s *CloudConvertStrategy) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return "", &ConversionError{Service: "cloudconvert", Message: "download failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ConversionError{Service: "cloudconvert", Message: fmt.Sprintf("download returned %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ConversionError{Service: "cloudconvert", Message: "download read failed", Cause: err}
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", &ConversionError{Service: "cloudconvert", Message: "downloaded text is empty"}
	}
	return text, nil
}

func (s *CloudConvertStrategy) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return defaultHTTPClient
}

func findTask(tasks []cloudConvertTask, name string) *cloudConvertTask {
	for i := range tasks {
		if tasks[i].Name == name {
			return &tasks[i]
		}
	}
	return nil
}
