package seed

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/looker-open-source/embed-content-seed/pkg/interop"
	"github.com/looker-open-source/embed-content-seed/pkg/looker"
	log "github.com/sirupsen/logrus"
)

type Seeder struct {
  i                 *interop.Interop
  log               *log.Logger
  repo              looker.Repository
  config            *Config
  eventsConfig      eventsConfig
  runId             uuid.UUID
  report            *Report
  folderCache       map[string][]looker.Dashboard
  titleCache        map[string]string
}

// New builds a Seeder from the loaded configuration. All input validation
// (mapping syntax, wildcard placement) happens here, before any repository
// call is made, so malformed input can never leave a partial folder tree or
// misplaced content behind.
func New(i *interop.Interop) (*Seeder, error) {
  config, err := loadConfig()
  if err != nil {
    return nil, err
  }

  eventsConfig, err := loadEventsConfig()
  if err != nil {
    return nil, err
  }

  runId, err := uuid.NewV4()
  if err != nil {
    return nil, fmt.Errorf("failed to generate run ID: %s", err)
  }

  return &Seeder{
    i:            i,
    log:          i.Logger,
    repo:         i.Looker,
    config:       config,
    eventsConfig: eventsConfig,
    runId:        runId,
    report:       &Report{RunID: runId.String()},
    folderCache:  map[string][]looker.Dashboard{},
    titleCache:   map[string]string{},
  }, nil
}

// Seed performs one reconciliation pass: acquire the embed session and the
// group root folder, resolve the complete subfolder tree, resolve the
// placement assignments, then materialize content. The returned report is
// valid whenever the error is nil; any per-item failure is reported there
// rather than through the error.
func (s *Seeder) Seed(ctx context.Context) (*Report, error) {
  s.pushRunEvent("seed_start", nil)

  rootId, err := s.repo.AcquireEmbedSession(
    ctx,
    s.config.ExternalUserId,
    s.config.ExternalGroupId,
  )
  if err != nil {
    s.pushRunEvent("seed_end", err)
    return nil, err
  }

  s.report.RootFolderID = rootId

  folderMap, err := s.resolveFolderTree(
    ctx,
    rootId,
    collectSubfolderNames(s.config),
  )
  if err != nil {
    s.pushRunEvent("seed_end", err)
    return nil, err
  }

  assignments, err := s.resolveAssignments(ctx, rootId, folderMap)
  if err != nil {
    s.pushRunEvent("seed_end", err)
    return nil, err
  }

  s.log.Debugf("resolved %d assignments", len(assignments))

  s.syncAssignments(ctx, assignments)

  s.pushRunEvent("seed_end", nil)

  s.report.Log(s.log)

  return s.report, nil
}
