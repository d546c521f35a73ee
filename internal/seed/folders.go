package seed

import (
	"context"
	"fmt"
)

// resolveFolderTree ensures every named subfolder exists directly under the
// group root and returns a name to folder id map. Existing children are
// reused by exact name match so repeated runs never create duplicates; at
// most one folder per distinct name is created per run.
func (s *Seeder) resolveFolderTree(
  ctx context.Context,
  rootId string,
  names []string,
) (map[string]string, error) {
  folderMap := map[string]string{}

  if len(names) == 0 {
    return folderMap, nil
  }

  children, err := s.repo.ListFolderChildren(ctx, rootId)
  if err != nil {
    return nil, err
  }

  existing := map[string]string{}

  for _, child := range children {
    if _, ok := existing[child.Name]; ok {
      // remote-side anomaly, first listed folder wins
      s.log.Warnf(
        "multiple folders named '%s' under root %s, using the first (ID: %s)",
        child.Name,
        rootId,
        existing[child.Name],
      )
      continue
    }

    existing[child.Name] = child.ID
  }

  for _, name := range names {
    if id, ok := existing[name]; ok {
      s.log.Infof("folder '%s' already exists (ID: %s)", name, id)
      folderMap[name] = id
      s.report.ReusedFolders = append(s.report.ReusedFolders, name)
      continue
    }

    folder, err := s.repo.CreateFolder(ctx, rootId, name)
    if err != nil {
      return nil, fmt.Errorf("%w: %s", ErrFolderCreateFailed, err)
    }

    s.log.Infof("created folder '%s' (ID: %s)", name, folder.ID)
    folderMap[name] = folder.ID
    s.report.CreatedFolders = append(s.report.CreatedFolders, name)
  }

  return folderMap, nil
}

// collectSubfolderNames unions the declared subfolders with every subfolder
// referenced by a mapping pair, preserving declaration order and first
// appearance order for mapped-only names. Every name a mapping can target is
// guaranteed a folder before any content is placed.
func collectSubfolderNames(config *Config) []string {
  names := []string{}
  seen := map[string]bool{}

  add := func(name string) {
    if seen[name] {
      return
    }
    seen[name] = true
    names = append(names, name)
  }

  for _, name := range config.Subfolders {
    add(name)
  }

  for _, pair := range config.SourceMappings {
    add(pair.Subfolder)
  }

  for _, pair := range config.LookmlMappings {
    add(pair.Subfolder)
  }

  return names
}
