package app

import (
  "github.com/sirupsen/logrus"
  "golang.org/x/oauth2/clientcredentials"

  "github.com/charmixer/loginui/captcha"
)

type EnvironmentConstants struct {
  RequestIdKey string
  LogKey       string

  SessionStoreKey          string // flashes and retained form fields
  SessionDurableStoreKey   string // remembered auth payloads, 30 day scope
  SessionEphemeralStoreKey string // auth payloads scoped to the browser session
}

// Environment carries everything the controllers need. Configuration is
// injected here at startup, handlers never reach for ambient state.
type Environment struct {
  Constants *EnvironmentConstants

  Logger *logrus.Logger

  AuthApiConfig *clientcredentials.Config // nil when the auth api is public

  Captcha captcha.Provider
}
