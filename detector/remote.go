package detector

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// RemoteSession delegates inference to an HTTP service. Each call posts the
// resized page as a multipart PNG upload named "file" and expects the raw
// output tensor back as {"shape": [...], "data": [...]}.
type RemoteSession struct {
	url    string
	client *http.Client
	size   int
}

// NewRemoteSession creates a session for the inference service at url. A nil
// client uses a client with a two minute timeout.
func NewRemoteSession(url string, inputSize int, client *http.Client) *RemoteSession {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	return &RemoteSession{url: url, client: client, size: inputSize}
}

// InputSize returns the square input size the service expects
func (s *RemoteSession) InputSize() (int, int) {
	return s.size, s.size
}

// Run uploads the blob image and decodes the returned tensor
func (s *RemoteSession) Run(ctx context.Context, blob *Blob) (Tensor, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "page.png")
	if err != nil {
		return Tensor{}, fmt.Errorf("create form file: %w", err)
	}
	if err := png.Encode(part, blob.Image); err != nil {
		return Tensor{}, fmt.Errorf("encode page image: %w", err)
	}
	if err := writer.WriteField("width", strconv.Itoa(blob.Width)); err != nil {
		return Tensor{}, fmt.Errorf("write width: %w", err)
	}
	if err := writer.WriteField("height", strconv.Itoa(blob.Height)); err != nil {
		return Tensor{}, fmt.Errorf("write height: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Tensor{}, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, body)
	if err != nil {
		return Tensor{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return Tensor{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Tensor{}, fmt.Errorf("inference failed with status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out Tensor
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Tensor{}, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// CheckHealth probes the service's /health endpoint
func (s *RemoteSession) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference service unhealthy: %d", resp.StatusCode)
	}
	return nil
}

// Close is a no-op; the HTTP client owns no per-session state
func (s *RemoteSession) Close() error {
	return nil
}
