package interop

import (
	"fmt"
	"os"
	"time"

	"github.com/looker-open-source/embed-content-seed/pkg/looker"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/nrlogrus"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Interop struct {
  App               *newrelic.Application
  ApiURL            string
  Logger            *log.Logger
  Looker            *looker.Client
}

func NewInteroperability() (*Interop, error) {
  app, err := newrelic.NewApplication(
    newrelic.ConfigAppName("Looker Embed Content Seed"),
    newrelic.ConfigLicense(os.Getenv("NEW_RELIC_LICENSE_KEY")),
    newrelic.ConfigEnabled(os.Getenv("NEW_RELIC_LICENSE_KEY") != ""),
  )
  if err != nil {
		return nil, err
  }

  logger := log.New()

  logger.SetLevel(log.InfoLevel)
  logger.SetFormatter(nrlogrus.NewFormatter(app, &log.TextFormatter{}))

  viper.SetConfigName("config")
  viper.AddConfigPath("configs")
  viper.AddConfigPath(".")

  err = viper.ReadInConfig()
  if err != nil {
    // flags and env can carry a full configuration on their own
    if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
      return nil, err
    }
  }

  setupLogging(logger)

  apiUrl := viper.GetString("apiUrl")
  if apiUrl == "" {
    apiUrl = os.Getenv("LOOKERSDK_BASE_URL")
    if apiUrl == "" {
      return nil, fmt.Errorf("missing Looker API URL")
    }
  }

  clientId := viper.GetString("clientId")
  if clientId == "" {
    clientId = os.Getenv("LOOKERSDK_CLIENT_ID")
    if clientId == "" {
      return nil, fmt.Errorf("missing Looker API client ID")
    }
  }

  clientSecret := viper.GetString("clientSecret")
  if clientSecret == "" {
    clientSecret = os.Getenv("LOOKERSDK_CLIENT_SECRET")
    if clientSecret == "" {
      return nil, fmt.Errorf("missing Looker API client secret")
    }
  }

  lookerClient := looker.NewClient(apiUrl, clientId, clientSecret, logger)

  setupSession(lookerClient)

  return &Interop{app, apiUrl, logger, lookerClient}, nil
}

func (i *Interop) Shutdown() {
  i.App.Shutdown(time.Second * 3)
}

func setupLogging(logger *log.Logger) {
  logLevel := viper.GetString("log.level")
  if logLevel != "" {
    level, err := log.ParseLevel(logLevel)
    if err != nil {
      log.Infof("failed to parse log level, default will be used: %s", err)
    } else {
      logger.SetLevel(level)
    }
  }

  if viper.IsSet("log.fileName") {
    file, err := os.OpenFile(
      viper.GetString("log.fileName"),
      os.O_CREATE|os.O_WRONLY|os.O_APPEND,
      0666,
    )
    if err != nil {
      log.Infof("failed to log to file, using default stderr: %s", err)
    } else {
      logger.Out = file
    }
  }
}

func setupSession(client *looker.Client) {
  if viper.IsSet("session.length") {
    client.Session.SessionLength = viper.GetInt("session.length")
  }

  if viper.IsSet("session.permissions") {
    client.Session.Permissions = viper.GetStringSlice("session.permissions")
  }

  if viper.IsSet("session.models") {
    client.Session.Models = viper.GetStringSlice("session.models")
  }

  if viper.IsSet("session.userAttributes") {
    client.Session.UserAttributes =
      viper.GetStringMapString("session.userAttributes")
  }
}
