package looker

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const childrenPageSize = 100

// ListFolderChildren returns every direct child of the folder, following
// the limit/offset pagination of the folders endpoint.
func (c *Client) ListFolderChildren(
	ctx context.Context,
	folderId string,
) ([]Folder, error) {
	var children []Folder

	offset := 0

	for done := false; !done; {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(childrenPageSize))
		query.Set("offset", strconv.Itoa(offset))

		var page []Folder

		err := c.get(
			ctx,
			fmt.Sprintf("/folders/%s/children", folderId),
			query,
			&page,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"listing children of folder %s failed: %w",
				folderId,
				err,
			)
		}

		children = append(children, page...)
		offset += len(page)

		if len(page) < childrenPageSize {
			done = true
		}
	}

	return children, nil
}

type createFolderRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
}

func (c *Client) CreateFolder(
	ctx context.Context,
	parentId string,
	name string,
) (Folder, error) {
	body := &createFolderRequest{Name: name, ParentID: parentId}

	var folder Folder

	err := c.post(ctx, "/folders", nil, body, &folder)
	if err != nil {
		return Folder{}, fmt.Errorf("creating folder '%s' failed: %w", name, err)
	}

	return folder, nil
}
