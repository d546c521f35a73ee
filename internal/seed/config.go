package seed

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Wildcard is the token that expands to every LookML dashboard visible to
// the session. It is only meaningful as the sole entry of the unmapped
// lookml id list; it never appears in a parsed Config past loadConfig.
const Wildcard = "*"

type MappingPair struct {
  ID                string
  Subfolder         string
}

type Config struct {
  ExternalGroupId   string
  ExternalUserId    string
  Subfolders        []string
  SourceDashboardIds []string
  LookmlDashboardIds []string
  ImportAll         bool
  SourceMappings    []MappingPair
  LookmlMappings    []MappingPair
}

func loadConfig() (*Config, error) {
  config := &Config{
    ExternalGroupId:    viper.GetString("externalGroupId"),
    ExternalUserId:     viper.GetString("externalUserId"),
    Subfolders:         cast.ToStringSlice(viper.Get("subfolders")),
    SourceDashboardIds: cast.ToStringSlice(viper.Get("sourceDashboardIds")),
    LookmlDashboardIds: cast.ToStringSlice(viper.Get("lookmlDashboardIds")),
  }

  if config.ExternalGroupId == "" {
    return nil, fmt.Errorf("missing external group ID")
  }

  var err error

  config.SourceMappings, err = parseMappingPairs(
    cast.ToStringSlice(viper.Get("sourceDashboardMapping")),
  )
  if err != nil {
    return nil, err
  }

  config.LookmlMappings, err = parseMappingPairs(
    cast.ToStringSlice(viper.Get("lookmlDashboardMapping")),
  )
  if err != nil {
    return nil, err
  }

  err = resolveWildcard(config)
  if err != nil {
    return nil, err
  }

  return config, nil
}

// resolveWildcard turns the "*" token into the ImportAll sentinel. The token
// is only valid as the single unmapped lookml id; anywhere else it would
// shadow a real identifier, so it is rejected outright.
func resolveWildcard(config *Config) error {
  for _, id := range config.LookmlDashboardIds {
    if id != Wildcard {
      continue
    }

    if len(config.LookmlDashboardIds) != 1 {
      return fmt.Errorf(
        "%w: '%s' cannot be combined with explicit lookml dashboard ids",
        ErrInvalidWildcardUsage,
        Wildcard,
      )
    }

    config.ImportAll = true
    config.LookmlDashboardIds = nil

    break
  }

  for _, id := range config.SourceDashboardIds {
    if id == Wildcard {
      return fmt.Errorf(
        "%w: '%s' is only valid for lookml dashboard ids",
        ErrInvalidWildcardUsage,
        Wildcard,
      )
    }
  }

  for _, pair := range append(
    append([]MappingPair{}, config.SourceMappings...),
    config.LookmlMappings...,
  ) {
    if pair.ID == Wildcard || pair.Subfolder == Wildcard {
      return fmt.Errorf(
        "%w: '%s' is not allowed inside mapping pairs",
        ErrInvalidWildcardUsage,
        Wildcard,
      )
    }
  }

  return nil
}

// parseMappingPairs splits "id:subfolder" entries on the last colon so that
// compound lookml ids of the form "model::dashboard" keep their separator.
func parseMappingPairs(entries []string) ([]MappingPair, error) {
  pairs := []MappingPair{}

  for _, entry := range entries {
    index := strings.LastIndex(entry, ":")
    if index < 0 {
      return nil, fmt.Errorf(
        "%w: '%s' is missing the ':' separator",
        ErrInvalidMappingSyntax,
        entry,
      )
    }

    id := entry[:index]
    subfolder := entry[index+1:]

    if id == "" || strings.HasSuffix(id, ":") {
      return nil, fmt.Errorf(
        "%w: '%s' has an empty item id",
        ErrInvalidMappingSyntax,
        entry,
      )
    }

    if subfolder == "" {
      return nil, fmt.Errorf(
        "%w: '%s' has an empty subfolder name",
        ErrInvalidMappingSyntax,
        entry,
      )
    }

    pairs = append(pairs, MappingPair{ID: id, Subfolder: subfolder})
  }

  return pairs, nil
}
