package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Client は従業員 API の型付きクライアントです。
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option は Client の生成オプションです。
type Option func(*Client)

// WithHTTPClient は下層の http.Client を差し替えます。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New は Client を生成します。
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope はサーバーの共通レスポンス形式です。errors のリスト・単一
// error・成功データは排他で、どの形かで失敗の種類を判別します。
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Errors  []FieldError    `json:"errors"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
}

// ListEmployees は全従業員を取得します。
func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	if err := c.do(ctx, http.MethodGet, "/api/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// GetEmployee は ID で従業員を取得します。
func (c *Client) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	var emp Employee
	if err := c.do(ctx, http.MethodGet, "/api/employees/"+strconv.FormatInt(id, 10), nil, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// CreateEmployee は従業員を作成します。
func (c *Client) CreateEmployee(ctx context.Context, in EmployeeInput) (*Employee, error) {
	var emp Employee
	if err := c.do(ctx, http.MethodPost, "/api/employees", in, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// UpdateEmployee は従業員情報を更新します。
func (c *Client) UpdateEmployee(ctx context.Context, id int64, in EmployeeInput) (*Employee, error) {
	var emp Employee
	if err := c.do(ctx, http.MethodPut, "/api/employees/"+strconv.FormatInt(id, 10), in, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// DeleteEmployee は従業員を削除します。
func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/employees/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: request %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}

	if !env.Success {
		return translateFailure(resp.StatusCode, env)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("api: decode data: %w", err)
		}
	}

	return nil
}

func translateFailure(status int, env envelope) error {
	if len(env.Errors) > 0 {
		return &ValidationError{Fields: env.Errors}
	}

	switch status {
	case http.StatusNotFound:
		return &NotFoundError{Message: env.Error}
	case http.StatusConflict:
		return &ConflictError{Message: env.Error}
	}

	if env.Error != "" {
		return fmt.Errorf("api: %s", env.Error)
	}
	return fmt.Errorf("api: unexpected response with status %d", status)
}
