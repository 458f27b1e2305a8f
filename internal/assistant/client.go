package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrMalformedResponse = errors.New("assistant: malformed response")

// StatusError reports a non-success HTTP status from the backend.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Credentials are the ambient HTTP Basic credentials sent with every request.
type Credentials struct {
	Username string
	Password string
}

// Client talks to the MyCloud Drive backend. It implements FileLister and
// ChatRequester.
type Client struct {
	BaseURL     string
	Credentials Credentials
	HTTP        *http.Client
}

var (
	_ FileLister    = (*Client)(nil)
	_ ChatRequester = (*Client)(nil)
)

func NewClient(baseURL string, creds Credentials) *Client {
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Credentials: creds,
		HTTP: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type filesResponse struct {
	Files []string `json:"files"`
}

type chatResponse struct {
	Response *string `json:"response"`
}

func (c *Client) ListFiles(ctx context.Context) ([]string, error) {
	var out filesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/files", nil, &out); err != nil {
		return nil, err
	}
	if out.Files == nil {
		return []string{}, nil
	}
	return out.Files, nil
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if req.Files == nil {
		req.Files = []string{}
	}
	var out chatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chatbot", req, &out); err != nil {
		return "", err
	}
	if out.Response == nil {
		return "", fmt.Errorf("%w: missing response field", ErrMalformedResponse)
	}
	return *out.Response, nil
}

// Upload sends a local file as multipart form field "file".
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("copy upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out struct {
		Filename string `json:"filename"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.Filename, nil
}

// Download streams the named file into dst.
func (c *Client) Download(ctx context.Context, filename string, dst io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/download/"+url.PathEscape(filename), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, statusError(req, resp)
	}
	return io.Copy(dst, resp.Body)
}

func (c *Client) Delete(ctx context.Context, filename string) error {
	return c.doJSON(ctx, http.MethodDelete, "/delete/"+url.PathEscape(filename), nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Credentials.Username != "" {
		req.SetBasicAuth(c.Credentials.Username, c.Credentials.Password)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(req, resp)
	}
	if out == nil {
		return nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func statusError(req *http.Request, resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &StatusError{
		Method: req.Method,
		Path:   req.URL.Path,
		Code:   resp.StatusCode,
		Body:   strings.TrimSpace(string(bodyBytes)),
	}
}
