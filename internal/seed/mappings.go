package seed

import (
	"context"
	"fmt"
)

type actionKind int

const (
  ACTION_COPY_DASHBOARD   actionKind = iota
  ACTION_IMPORT_LOOKML
)

func (a actionKind) String() string {
  if a == ACTION_COPY_DASHBOARD {
    return "copy-dashboard"
  }
  return "import-lookml-dashboard"
}

// assignment pairs one item with one destination folder. The same item id
// may appear in several assignments with different folders; that fan-out is
// deliberate and must survive resolution untouched.
type assignment struct {
  itemId            string
  folderId          string
  action            actionKind
}

// resolveAssignments turns the declarative placement input into the ordered
// assignment list the synchronizer consumes: unmapped copies into the root,
// mapped copies, unmapped (or wildcard) imports into the root, mapped
// imports. The wildcard snapshot is taken here with a single listing call;
// lookml dashboards appearing later in the repository are not part of this
// run.
func (s *Seeder) resolveAssignments(
  ctx context.Context,
  rootId string,
  folderMap map[string]string,
) ([]assignment, error) {
  assignments := []assignment{}

  for _, id := range s.config.SourceDashboardIds {
    assignments = append(assignments, assignment{
      itemId:   id,
      folderId: rootId,
      action:   ACTION_COPY_DASHBOARD,
    })
  }

  for _, pair := range s.config.SourceMappings {
    folderId, ok := folderMap[pair.Subfolder]
    if !ok {
      return nil, unresolvedFolder(pair.Subfolder)
    }

    assignments = append(assignments, assignment{
      itemId:   pair.ID,
      folderId: folderId,
      action:   ACTION_COPY_DASHBOARD,
    })
  }

  importIds := s.config.LookmlDashboardIds

  if s.config.ImportAll {
    s.log.Infof("wildcard '%s' provided, fetching ALL lookml dashboards...", Wildcard)

    dashboards, err := s.repo.ListLookmlDashboards(ctx)
    if err != nil {
      return nil, err
    }

    s.log.Infof("found %d lookml dashboards", len(dashboards))

    importIds = nil
    for _, dashboard := range dashboards {
      importIds = append(importIds, dashboard.ID)
    }
  }

  for _, id := range importIds {
    assignments = append(assignments, assignment{
      itemId:   id,
      folderId: rootId,
      action:   ACTION_IMPORT_LOOKML,
    })
  }

  for _, pair := range s.config.LookmlMappings {
    folderId, ok := folderMap[pair.Subfolder]
    if !ok {
      return nil, unresolvedFolder(pair.Subfolder)
    }

    assignments = append(assignments, assignment{
      itemId:   pair.ID,
      folderId: folderId,
      action:   ACTION_IMPORT_LOOKML,
    })
  }

  return assignments, nil
}

func unresolvedFolder(name string) error {
  return fmt.Errorf(
    "%w: subfolder '%s' missing from the resolved folder tree",
    ErrUnresolvedFolder,
    name,
  )
}
