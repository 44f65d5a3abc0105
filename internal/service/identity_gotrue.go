package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const identityPageSize = 100

// GoTrueIdentityClient talks to a GoTrue-compatible admin API with a
// service-role key. Only the two admin calls this service needs are
// implemented.
type GoTrueIdentityClient struct {
	BaseURL    string
	ServiceKey string
	HTTPClient *http.Client
}

func NewGoTrueIdentityClient(baseURL string, serviceKey string) *GoTrueIdentityClient {
	return &GoTrueIdentityClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *GoTrueIdentityClient) Configured() bool {
	return strings.TrimSpace(c.BaseURL) != "" && strings.TrimSpace(c.ServiceKey) != ""
}

type listUsersResponse struct {
	Users []IdentityUser `json:"users"`
}

func (c *GoTrueIdentityClient) ListUsers(ctx context.Context) ([]IdentityUser, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var all []IdentityUser
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/admin/users?page=%d&per_page=%d", c.BaseURL, page, identityPageSize)
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		c.authorize(request)

		response, err := c.httpClient().Do(request)
		if err != nil {
			return nil, err
		}
		var body listUsersResponse
		decodeErr := json.NewDecoder(response.Body).Decode(&body)
		response.Body.Close()
		if response.StatusCode >= 300 {
			return nil, fmt.Errorf("identity listing failed with status %d", response.StatusCode)
		}
		if decodeErr != nil {
			return nil, decodeErr
		}

		all = append(all, body.Users...)
		if len(body.Users) < identityPageSize {
			return all, nil
		}
	}
}

func (c *GoTrueIdentityClient) UpdatePassword(ctx context.Context, identityID string, newPassword string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]string{"password": newPassword})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/admin/users/%s", c.BaseURL, identityID)
	request, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.authorize(request)
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient().Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if response.StatusCode >= 300 {
		return fmt.Errorf("identity password update failed with status %d", response.StatusCode)
	}
	return nil
}

func (c *GoTrueIdentityClient) authorize(request *http.Request) {
	request.Header.Set("Authorization", "Bearer "+c.ServiceKey)
	request.Header.Set("apikey", c.ServiceKey)
}

func (c *GoTrueIdentityClient) httpClient() *http.Client {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return c.HTTPClient
}
