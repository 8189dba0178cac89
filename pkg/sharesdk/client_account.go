package sharesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Register creates an account. The response carries the allocated
// identifier, which is the only way to log in afterwards.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/register", bytes.NewReader(body), headers)
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}

	return &out, nil
}

// Login exchanges an identifier and password for an access token.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/login", bytes.NewReader(body), headers)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListDepartments returns the fixed department list in display order.
func (c *SDKClient) ListDepartments(ctx context.Context) (*DepartmentsResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/departments", nil, nil)
	if err != nil {
		return nil, err
	}

	var out DepartmentsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}
