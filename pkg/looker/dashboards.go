package looker

import (
	"context"
	"fmt"
	"net/url"
)

// ListFolderDashboards returns the dashboards directly inside the folder.
func (c *Client) ListFolderDashboards(
	ctx context.Context,
	folderId string,
) ([]Dashboard, error) {
	var dashboards []Dashboard

	err := c.get(
		ctx,
		fmt.Sprintf("/folders/%s/dashboards", folderId),
		nil,
		&dashboards,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"listing dashboards of folder %s failed: %w",
			folderId,
			err,
		)
	}

	return dashboards, nil
}

func (c *Client) GetDashboard(
	ctx context.Context,
	dashboardId string,
) (Dashboard, error) {
	var dashboard Dashboard

	err := c.get(ctx, fmt.Sprintf("/dashboards/%s", dashboardId), nil, &dashboard)
	if err != nil {
		return Dashboard{}, fmt.Errorf(
			"fetching dashboard %s failed: %w",
			dashboardId,
			err,
		)
	}

	return dashboard, nil
}

// CopyDashboard duplicates an existing dashboard into the destination
// folder. The copy keeps the source dashboard's title.
func (c *Client) CopyDashboard(
	ctx context.Context,
	dashboardId string,
	folderId string,
) (Dashboard, error) {
	query := url.Values{}
	query.Set("folder_id", folderId)

	var dashboard Dashboard

	err := c.post(
		ctx,
		fmt.Sprintf("/dashboards/%s/copy", dashboardId),
		query,
		nil,
		&dashboard,
	)
	if err != nil {
		return Dashboard{}, fmt.Errorf(
			"copying dashboard %s failed: %w",
			dashboardId,
			err,
		)
	}

	return dashboard, nil
}

func (c *Client) ListLookmlDashboards(ctx context.Context) ([]LookmlDashboard, error) {
	var dashboards []LookmlDashboard

	err := c.get(ctx, "/lookml_dashboards", nil, &dashboards)
	if err != nil {
		return nil, fmt.Errorf("listing lookml dashboards failed: %w", err)
	}

	return dashboards, nil
}

// ImportLookmlDashboard materializes a model-defined dashboard into the
// destination folder as a user-defined dashboard. The created dashboard
// records the lookml id it was imported from as its lookml link.
func (c *Client) ImportLookmlDashboard(
	ctx context.Context,
	lookmlDashboardId string,
	folderId string,
) (Dashboard, error) {
	var dashboard Dashboard

	err := c.post(
		ctx,
		fmt.Sprintf("/dashboards/%s/import/%s", lookmlDashboardId, folderId),
		nil,
		nil,
		&dashboard,
	)
	if err != nil {
		return Dashboard{}, fmt.Errorf(
			"importing lookml dashboard %s failed: %w",
			lookmlDashboardId,
			err,
		)
	}

	return dashboard, nil
}
