package seed

import (
	"context"

	"github.com/looker-open-source/embed-content-seed/pkg/looker"
)

type itemResult int

const (
  ITEM_CREATED        itemResult = iota
  ITEM_SKIPPED
  ITEM_FAILED
)

func (r itemResult) String() string {
  switch r {
  case ITEM_CREATED:
    return "created"
  case ITEM_SKIPPED:
    return "skipped"
  }
  return "failed"
}

// syncAssignments materializes every assignment in order, skipping items the
// destination folder already holds. One item's failure is recorded and the
// loop moves on; fatal repository outages are indistinguishable from item
// failures at this stage and are treated the same to maximize placed
// content.
func (s *Seeder) syncAssignments(
  ctx context.Context,
  assignments []assignment,
) {
  for _, a := range assignments {
    s.log.Debugf(
      "processing %s of '%s' into folder %s",
      a.action,
      a.itemId,
      a.folderId,
    )

    result, err := s.syncOne(ctx, a)

    outcome := ItemOutcome{
      ItemID:   a.itemId,
      FolderID: a.folderId,
      Action:   a.action.String(),
      Result:   result.String(),
    }

    switch result {
    case ITEM_CREATED:
      s.log.Infof(
        "%s: placed '%s' into folder %s",
        a.action,
        a.itemId,
        a.folderId,
      )

    case ITEM_SKIPPED:
      s.log.Infof(
        "%s: '%s' already present in folder %s, skipping",
        a.action,
        a.itemId,
        a.folderId,
      )

    case ITEM_FAILED:
      outcome.Reason = err.Error()
      s.log.Warnf(
        "%s of '%s' into folder %s failed: %s",
        a.action,
        a.itemId,
        a.folderId,
        err,
      )
    }

    s.report.Items = append(s.report.Items, outcome)
    s.pushItemEvent(&outcome)
  }
}

func (s *Seeder) syncOne(
  ctx context.Context,
  a assignment,
) (itemResult, error) {
  if a.action == ACTION_COPY_DASHBOARD {
    return s.copyDashboard(ctx, a.itemId, a.folderId)
  }

  return s.importLookmlDashboard(ctx, a.itemId, a.folderId)
}

// copyDashboard duplicates the source dashboard into the folder unless the
// folder already holds a dashboard carrying the source's title. The guard is
// folder-scoped: the same source copied into other folders is fan-out, not a
// collision.
func (s *Seeder) copyDashboard(
  ctx context.Context,
  sourceId string,
  folderId string,
) (itemResult, error) {
  title, err := s.sourceTitle(ctx, sourceId)
  if err != nil {
    return ITEM_FAILED, err
  }

  dashboards, err := s.folderContents(ctx, folderId)
  if err != nil {
    return ITEM_FAILED, err
  }

  for _, dashboard := range dashboards {
    if dashboard.Title == title {
      return ITEM_SKIPPED, nil
    }
  }

  copied, err := s.repo.CopyDashboard(ctx, sourceId, folderId)
  if err != nil {
    return ITEM_FAILED, err
  }

  if copied.Title == "" {
    copied.Title = title
  }

  s.folderCache[folderId] = append(s.folderCache[folderId], copied)

  return ITEM_CREATED, nil
}

// importLookmlDashboard imports the model-defined dashboard into the folder
// unless a prior import of the same lookml id is already present there.
func (s *Seeder) importLookmlDashboard(
  ctx context.Context,
  lookmlId string,
  folderId string,
) (itemResult, error) {
  dashboards, err := s.folderContents(ctx, folderId)
  if err != nil {
    return ITEM_FAILED, err
  }

  for _, dashboard := range dashboards {
    if dashboard.LookmlLinkID == lookmlId {
      return ITEM_SKIPPED, nil
    }
  }

  imported, err := s.repo.ImportLookmlDashboard(ctx, lookmlId, folderId)
  if err != nil {
    return ITEM_FAILED, err
  }

  if imported.LookmlLinkID == "" {
    imported.LookmlLinkID = lookmlId
  }

  s.folderCache[folderId] = append(s.folderCache[folderId], imported)

  return ITEM_CREATED, nil
}

// folderContents lists a folder's dashboards once per run. Items created by
// earlier assignments are appended to the snapshot so a repeated assignment
// into the same folder still skips.
func (s *Seeder) folderContents(
  ctx context.Context,
  folderId string,
) ([]looker.Dashboard, error) {
  if dashboards, ok := s.folderCache[folderId]; ok {
    return dashboards, nil
  }

  dashboards, err := s.repo.ListFolderDashboards(ctx, folderId)
  if err != nil {
    return nil, err
  }

  if dashboards == nil {
    dashboards = []looker.Dashboard{}
  }

  s.folderCache[folderId] = dashboards

  return dashboards, nil
}

func (s *Seeder) sourceTitle(
  ctx context.Context,
  sourceId string,
) (string, error) {
  if title, ok := s.titleCache[sourceId]; ok {
    return title, nil
  }

  dashboard, err := s.repo.GetDashboard(ctx, sourceId)
  if err != nil {
    return "", err
  }

  s.titleCache[sourceId] = dashboard.Title

  return dashboard.Title, nil
}
