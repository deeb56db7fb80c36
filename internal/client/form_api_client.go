package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"form-template-api/internal/dto"

	"github.com/google/uuid"
)

// APIError is a non-success response from the form API
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("form api: %d %s: %s", e.Status, e.Code, e.Message)
}

// IsNotFound reports whether the API answered 404
func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// FormAPIClient talks to the form template HTTP API. It is the remote
// store behind the builder used by formctl.
type FormAPIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewFormAPIClient creates a client for baseURL (including the API base path)
func NewFormAPIClient(baseURL, token string, timeout time.Duration) *FormAPIClient {
	return &FormAPIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *FormAPIClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func (c *FormAPIClient) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, "application/json", body, out)
}

// ListTemplates returns one page of templates
func (c *FormAPIClient) ListTemplates(ctx context.Context, page, limit int) (*dto.PaginatedFormTemplatesResponse, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(limit))

	var out dto.PaginatedFormTemplatesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/form-templates?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *FormAPIClient) GetTemplate(ctx context.Context, templateID uuid.UUID) (*dto.FormTemplateResponse, error) {
	var out dto.FormTemplateResponse
	if err := c.doJSON(ctx, http.MethodGet, "/form-templates/"+templateID.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportTemplate uploads a YAML template document
func (c *FormAPIClient) ImportTemplate(ctx context.Context, document []byte) (*dto.FormTemplateResponse, error) {
	var out dto.FormTemplateResponse
	if err := c.do(ctx, http.MethodPost, "/form-templates/import", "application/x-yaml", bytes.NewReader(document), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *FormAPIClient) CreateElement(ctx context.Context, templateID uuid.UUID, req *dto.CreateFormElementRequest) (*dto.FormElementResponse, error) {
	var out dto.FormElementResponse
	if err := c.doJSON(ctx, http.MethodPost, "/form-templates/"+templateID.String()+"/elements", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *FormAPIClient) UpdateElement(ctx context.Context, elementID uuid.UUID, req *dto.UpdateFormElementRequest) (*dto.FormElementResponse, error) {
	var out dto.FormElementResponse
	if err := c.doJSON(ctx, http.MethodPut, "/form-elements/"+elementID.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *FormAPIClient) DeleteElement(ctx context.Context, elementID uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "/form-elements/"+elementID.String(), nil, nil)
}

func (c *FormAPIClient) ReorderElements(ctx context.Context, templateID uuid.UUID, ids []uuid.UUID) error {
	return c.doJSON(ctx, http.MethodPut, "/form-templates/"+templateID.String()+"/elements/reorder",
		dto.ReorderElementsRequest{IDs: ids}, nil)
}
