package seed

import "errors"

// Fatal error classes. Any of these aborts the run before or during
// folder resolution; per-item synchronization failures are collected in the
// report instead and never surface through these.
var (
  ErrFolderCreateFailed   = errors.New("folder creation failed")
  ErrUnresolvedFolder     = errors.New("unresolved target folder")
  ErrInvalidMappingSyntax = errors.New("invalid mapping syntax")
  ErrInvalidWildcardUsage = errors.New("invalid wildcard usage")
)
