package seed

import (
	"github.com/spf13/viper"
)

type eventsConfig struct {
  Enabled           bool
  EventType         string
}

const defaultEventType = "LookerContentSeedEvent"

func loadEventsConfig() (eventsConfig, error) {
  config := eventsConfig{}

  err := viper.UnmarshalKey("events", &config)
  if err != nil {
    return config, err
  }

  if config.EventType == "" {
    config.EventType = defaultEventType
  }

  return config, nil
}

// pushRunEvent records a run-lifecycle audit event tagged with the run id.
func (s *Seeder) pushRunEvent(action string, err error) {
  if !s.eventsConfig.Enabled {
    return
  }

  event := map[string]interface{}{
    "runId":  s.runId.String(),
    "action": action,
    "error":  err != nil,
  }

  if err != nil {
    event["errorMessage"] = err.Error()
  }

  s.i.App.RecordCustomEvent(s.eventsConfig.EventType, event)
}

// pushItemEvent records one audit event per processed assignment.
func (s *Seeder) pushItemEvent(outcome *ItemOutcome) {
  if !s.eventsConfig.Enabled {
    return
  }

  event := map[string]interface{}{
    "runId":    s.runId.String(),
    "action":   outcome.Action,
    "itemId":   outcome.ItemID,
    "folderId": outcome.FolderID,
    "result":   outcome.Result,
  }

  if outcome.Reason != "" {
    event["errorMessage"] = outcome.Reason
  }

  s.i.App.RecordCustomEvent(s.eventsConfig.EventType, event)
}
