package seed

import (
	log "github.com/sirupsen/logrus"
)

type ItemOutcome struct {
  ItemID            string
  FolderID          string
  Action            string
  Result            string
  Reason            string
}

// Report is the run ledger: the resolved root, every folder created or
// reused, and one outcome per assignment.
type Report struct {
  RunID             string
  RootFolderID      string
  CreatedFolders    []string
  ReusedFolders     []string
  Items             []ItemOutcome
}

func (r *Report) Failed() bool {
  for _, item := range r.Items {
    if item.Result == ITEM_FAILED.String() {
      return true
    }
  }

  return false
}

func (r *Report) countResult(result itemResult) int {
  count := 0

  for _, item := range r.Items {
    if item.Result == result.String() {
      count += 1
    }
  }

  return count
}

func (r *Report) Log(logger *log.Logger) {
  logger.Infof(
    "run %s: root folder %s, %d folders created, %d reused",
    r.RunID,
    r.RootFolderID,
    len(r.CreatedFolders),
    len(r.ReusedFolders),
  )

  for _, item := range r.Items {
    if item.Reason != "" {
      logger.Infof(
        "  %s '%s' -> folder %s: %s (%s)",
        item.Action,
        item.ItemID,
        item.FolderID,
        item.Result,
        item.Reason,
      )
      continue
    }

    logger.Infof(
      "  %s '%s' -> folder %s: %s",
      item.Action,
      item.ItemID,
      item.FolderID,
      item.Result,
    )
  }

  logger.Infof(
    "placed %d items, skipped %d, %d failed",
    r.countResult(ITEM_CREATED),
    r.countResult(ITEM_SKIPPED),
    r.countResult(ITEM_FAILED),
  )
}
