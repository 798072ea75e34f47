package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/delivery-desk/v2/internal/auth"
)

// TokenSource supplies the bearer token for outgoing requests. The
// session store implements it.
type TokenSource interface {
	Token() string
}

// ApiClient is the shared HTTP layer for all API calls. It attaches the
// bearer token, tags every request with an X-Request-ID, and maps HTTP
// failures onto the auth error taxonomy. It never retries; failures are
// surfaced once and retry policy belongs to the caller.
type ApiClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewApiClient(baseURL string, client *http.Client, tokens TokenSource) *ApiClient {
	if client == nil {
		client = &http.Client{}
	}
	return &ApiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
		tokens:  tokens,
	}
}

// Get issues a GET request and decodes the JSON response into out
func (c *ApiClient) Get(endpoint string, out interface{}) error {
	return c.call("GET", endpoint, nil, out)
}

// Post issues a POST request with an optional JSON payload
func (c *ApiClient) Post(endpoint string, payload, out interface{}) error {
	return c.call("POST", endpoint, payload, out)
}

// Patch issues a PATCH request with a JSON payload
func (c *ApiClient) Patch(endpoint string, payload, out interface{}) error {
	return c.call("PATCH", endpoint, payload, out)
}

func (c *ApiClient) call(method, endpoint string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request data: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, out)
}

// Upload sends a file as multipart/form-data together with extra form
// fields (e.g. the upload category) and decodes the JSON response.
func (c *ApiClient) Upload(endpoint, fieldName, fileName string, fileData []byte, fields map[string]string, out interface{}) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(fileData)); err != nil {
		return fmt.Errorf("failed to copy file data: %w", err)
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, out)
}

func (c *ApiClient) send(req *http.Request, out interface{}) error {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return &auth.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// A 2xx with a body we cannot parse is treated as a server fault
		return &auth.ServerError{StatusCode: resp.StatusCode}
	}
	return nil
}

// decodeAPIError maps a non-2xx response onto the error taxonomy. 401
// means the session is gone (login remaps this to invalid credentials),
// a 4xx carrying field errors becomes a validation.Errors map, and
// everything else is a server fault.
func decodeAPIError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return auth.ErrSessionExpired
	}
	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return &auth.ServerError{StatusCode: resp.StatusCode}
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var parsed struct {
		Errors  map[string]string `json:"errors"`
		Message string            `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		fieldErrs := validation.Errors{}
		for field, message := range parsed.Errors {
			fieldErrs[field] = errors.New(message)
		}
		return fieldErrs
	}

	return &auth.ServerError{StatusCode: resp.StatusCode}
}

// ResolveAssetURL turns a root-relative upload path into an absolute URL
// against the API origin, stripping the /api suffix the way the server
// serves /uploads from its root. Absolute URLs pass through unchanged.
func (c *ApiClient) ResolveAssetURL(raw string) string {
	if !strings.HasPrefix(raw, "/") {
		return raw
	}
	return strings.TrimSuffix(c.baseURL, "/api") + raw
}
