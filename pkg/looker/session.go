package looker

import (
	"context"
	"fmt"
	"net/url"
)

// SessionConfig carries the cookieless-session acquire body fields that are
// not derived from the external ids. Defaults match what the embed seeding
// flow has always sent.
type SessionConfig struct {
	FirstName      string
	LastName       string
	SessionLength  int
	Permissions    []string
	Models         []string
	UserAttributes map[string]string
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		FirstName:     "Embed",
		LastName:      "Seed",
		SessionLength: 3600,
		Permissions: []string{
			"access_data",
			"see_looks",
			"see_user_dashboards",
			"see_lookml_dashboards",
		},
		Models:         []string{"basic_ecomm"},
		UserAttributes: map[string]string{"locale": "en_US"},
	}
}

type acquireSessionRequest struct {
	FirstName        string            `json:"first_name"`
	LastName         string            `json:"last_name"`
	SessionLength    int               `json:"session_length"`
	ForceLogoutLogin bool              `json:"force_logout_login"`
	ExternalUserID   string            `json:"external_user_id"`
	ExternalGroupID  string            `json:"external_group_id"`
	Permissions      []string          `json:"permissions"`
	Models           []string          `json:"models"`
	UserAttributes   map[string]string `json:"user_attributes"`
}

type acquireSessionResponse struct {
	SessionReferenceToken string `json:"session_reference_token"`
}

// AcquireEmbedSession acquires a cookieless embed session for the external
// user/group pair, which guarantees the embed group and its shared folder
// exist, then resolves that folder's id. An empty externalUserID defaults to
// "seed-user-<externalGroupID>".
func (c *Client) AcquireEmbedSession(
	ctx context.Context,
	externalUserId string,
	externalGroupId string,
) (string, error) {
	if externalUserId == "" {
		externalUserId = fmt.Sprintf("seed-user-%s", externalGroupId)
	}

	body := &acquireSessionRequest{
		FirstName:        c.Session.FirstName,
		LastName:         c.Session.LastName,
		SessionLength:    c.Session.SessionLength,
		ForceLogoutLogin: true,
		ExternalUserID:   externalUserId,
		ExternalGroupID:  externalGroupId,
		Permissions:      c.Session.Permissions,
		Models:           c.Session.Models,
		UserAttributes:   c.Session.UserAttributes,
	}

	var resp acquireSessionResponse

	err := c.post(ctx, "/embed/cookieless_session/acquire", nil, body, &resp)
	if err != nil {
		return "", fmt.Errorf("acquiring embed session failed: %w", err)
	}

	c.Logger.Infof(
		"acquired cookieless session for user '%s' with group '%s'",
		externalUserId,
		externalGroupId,
	)

	return c.findEmbedGroupFolder(ctx, externalGroupId)
}

// findEmbedGroupFolder locates the embed group's shared folder: an embed
// folder named after the external group id whose parent is the embed shared
// root.
func (c *Client) findEmbedGroupFolder(
	ctx context.Context,
	externalGroupId string,
) (string, error) {
	query := url.Values{}
	query.Set("name", externalGroupId)

	var folders []Folder

	err := c.get(ctx, "/folders/search", query, &folders)
	if err != nil {
		return "", fmt.Errorf("searching embed group folder failed: %w", err)
	}

	for _, folder := range folders {
		if !folder.IsEmbed {
			continue
		}

		parent, err := c.folderParent(ctx, folder.ID)
		if err != nil {
			return "", err
		}

		if parent.IsEmbedSharedRoot {
			c.Logger.Infof(
				"found embed group folder '%s' (ID: %s)",
				folder.Name,
				folder.ID,
			)
			return folder.ID, nil
		}
	}

	return "", fmt.Errorf(
		"no embed folder found for external group '%s'",
		externalGroupId,
	)
}

func (c *Client) folderParent(ctx context.Context, folderId string) (Folder, error) {
	var parent Folder

	err := c.get(ctx, fmt.Sprintf("/folders/%s/parent", folderId), nil, &parent)
	if err != nil {
		return Folder{}, fmt.Errorf(
			"fetching parent of folder %s failed: %w",
			folderId,
			err,
		)
	}

	return parent, nil
}
