package looker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrUnavailable indicates a transport failure or a server-side error talking
// to the Looker API. Callers treat it as fatal for the run.
var ErrUnavailable = errors.New("content repository unavailable")

type Folder struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	ParentID          string `json:"parent_id"`
	IsEmbed           bool   `json:"is_embed"`
	IsEmbedSharedRoot bool   `json:"is_embed_shared_root"`
}

type Dashboard struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	FolderID     string `json:"folder_id"`
	LookmlLinkID string `json:"lookml_link_id"`
}

// LookmlDashboard is a model-defined dashboard. ID is the compound
// "model::dashboard" identifier.
type LookmlDashboard struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Repository is the narrow surface of the Looker API the seeder consumes.
type Repository interface {
	AcquireEmbedSession(ctx context.Context, externalUserID, externalGroupID string) (string, error)
	ListFolderChildren(ctx context.Context, folderID string) ([]Folder, error)
	CreateFolder(ctx context.Context, parentID, name string) (Folder, error)
	ListFolderDashboards(ctx context.Context, folderID string) ([]Dashboard, error)
	GetDashboard(ctx context.Context, dashboardID string) (Dashboard, error)
	CopyDashboard(ctx context.Context, dashboardID, folderID string) (Dashboard, error)
	ListLookmlDashboards(ctx context.Context) ([]LookmlDashboard, error)
	ImportLookmlDashboard(ctx context.Context, lookmlDashboardID, folderID string) (Dashboard, error)
}

type Client struct {
	ApiURL       string
	ClientID     string
	ClientSecret string
	Logger       *log.Logger

	Session SessionConfig

	httpClient *http.Client
}

func NewClient(
	apiUrl string,
	clientId string,
	clientSecret string,
	logger *log.Logger,
) *Client {
	return &Client{
		ApiURL:       apiUrl,
		ClientID:     clientId,
		ClientSecret: clientSecret,
		Logger:       logger,
		Session:      DefaultSessionConfig(),
	}
}

func (c *Client) client() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}

	// Looker's login endpoint takes client_id/client_secret as form params
	// and hands back a bearer token, which is exactly the client
	// credentials flow.
	config := &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     fmt.Sprintf("%s/api/4.0/login", c.ApiURL),
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	c.httpClient = config.Client(context.Background())

	return c.httpClient
}

func (c *Client) get(
	ctx context.Context,
	path string,
	query url.Values,
	result interface{},
) error {
	return c.do(ctx, http.MethodGet, path, query, nil, result)
}

func (c *Client) post(
	ctx context.Context,
	path string,
	query url.Values,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, http.MethodPost, path, query, body, result)
}

func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body interface{},
	result interface{},
) error {
	u := fmt.Sprintf("%s/api/4.0%s", c.ApiURL, path)
	if len(query) > 0 {
		u = u + "?" + query.Encode()
	}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	c.Logger.Debugf("making looker request %s %s...", method, u)

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}

	req.Header.Add("Accept", "application/json")
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.client().Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	if resp.StatusCode >= 500 {
		return fmt.Errorf(
			"%w: %s %s returned %s",
			ErrUnavailable,
			method,
			path,
			resp.Status,
		)
	}

	if resp.StatusCode >= 400 {
		return newApiError(method, path, resp.StatusCode, raw)
	}

	c.Logger.Debugf("read %d bytes, unmarshaling JSON...", len(raw))

	if result == nil {
		return nil
	}

	return json.Unmarshal(raw, result)
}

// ApiError is a non-5xx error response from the Looker API, e.g. a missing
// dashboard on a copy call. Per-item failures surface as this type.
type ApiError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string `json:"message"`
}

func (e *ApiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf(
			"%s %s failed (%d): %s",
			e.Method, e.Path, e.StatusCode, e.Message,
		)
	}
	return fmt.Sprintf("%s %s failed (%d)", e.Method, e.Path, e.StatusCode)
}

func newApiError(method, path string, status int, body []byte) error {
	apiErr := &ApiError{
		Method:     method,
		Path:       path,
		StatusCode: status,
	}

	// body is best effort, the status code alone is enough to report
	_ = json.Unmarshal(body, apiErr)

	return apiErr
}
