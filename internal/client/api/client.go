package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/credadmin/internal/models"
	"github.com/iudanet/credadmin/pkg/api"
)

const (
	resourcePath       = "/api/credentials"
	resourceSearchPath = "/api/_search/credentials"
)

//go:generate moq -out credential_service_mock.go . CredentialService

// CredentialService описывает операции над ресурсом credentials.
// Используется views и dialogs; реализуется *Client.
type CredentialService interface {
	Create(ctx context.Context, cred *models.Credential) (*models.Credential, error)
	Update(ctx context.Context, cred *models.Credential) (*models.Credential, error)
	Find(ctx context.Context, id int64) (*models.Credential, error)
	List(ctx context.Context, opts QueryOptions) ([]*models.Credential, error)
	Search(ctx context.Context, opts QueryOptions) ([]*models.Credential, error)
	Delete(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]api.UserDTO, error)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	mu         sync.RWMutex
}

var _ CredentialService = (*Client)(nil)

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Login выполняет аутентификацию и возвращает JWT токен
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/authenticate", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Create сохраняет новый credential; сервер назначает ID
func (c *Client) Create(ctx context.Context, cred *models.Credential) (*models.Credential, error) {
	if cred.HasID() {
		return nil, ErrHasID
	}

	var resp api.CredentialDTO
	if err := c.doRequest(ctx, http.MethodPost, resourcePath, nil, cred.ToWire(), &resp); err != nil {
		return nil, fmt.Errorf("create credential failed: %w", err)
	}
	return models.CredentialFromWire(resp)
}

// Update сохраняет изменения существующего credential
func (c *Client) Update(ctx context.Context, cred *models.Credential) (*models.Credential, error) {
	if !cred.HasID() {
		return nil, ErrMissingID
	}

	var resp api.CredentialDTO
	if err := c.doRequest(ctx, http.MethodPut, resourcePath, nil, cred.ToWire(), &resp); err != nil {
		return nil, fmt.Errorf("update credential %d failed: %w", cred.IDValue(), err)
	}
	return models.CredentialFromWire(resp)
}

// Find получает credential по ID
func (c *Client) Find(ctx context.Context, id int64) (*models.Credential, error) {
	var resp api.CredentialDTO
	path := fmt.Sprintf("%s/%d", resourcePath, id)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get credential %d failed: %w", id, err)
	}
	return models.CredentialFromWire(resp)
}

// List получает список credentials; опции передаются серверу без изменений
func (c *Client) List(ctx context.Context, opts QueryOptions) ([]*models.Credential, error) {
	var resp []api.CredentialDTO
	if err := c.doRequest(ctx, http.MethodGet, resourcePath, opts.Values(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list credentials failed: %w", err)
	}
	return models.CredentialsFromWire(resp)
}

// Search выполняет полнотекстовый поиск по credentials
func (c *Client) Search(ctx context.Context, opts QueryOptions) ([]*models.Credential, error) {
	var resp []api.CredentialDTO
	if err := c.doRequest(ctx, http.MethodGet, resourceSearchPath, opts.Values(), nil, &resp); err != nil {
		return nil, fmt.Errorf("search credentials failed: %w", err)
	}
	return models.CredentialsFromWire(resp)
}

// Delete удаляет credential по ID
func (c *Client) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", resourcePath, id)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete credential %d failed: %w", id, err)
	}
	return nil
}

// ListUsers получает пользователей, которым может принадлежать credential
func (c *Client) ListUsers(ctx context.Context) ([]api.UserDTO, error) {
	var resp []api.UserDTO
	if err := c.doRequest(ctx, http.MethodGet, "/api/users", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("list users failed: %w", err)
	}
	return resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, result any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			apiErr.Message = errResp.Message
			if apiErr.Message == "" {
				apiErr.Message = errResp.Error
			}
			apiErr.ErrorKey = errResp.ErrorKey
		} else {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	// DELETE возвращает пустое тело
	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
