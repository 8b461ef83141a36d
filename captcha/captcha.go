package captcha

import (
  "net/http"
  "net/url"
  "time"
  "golang.org/x/net/context"
  "github.com/sirupsen/logrus"
)

// The action label sent along with every challenge verification.
const Action = "login"

// Form field names used by the login page.
const TokenField = "captcha"
const AckField = "captcha_ack"

// State is what one submission learned from the active captcha variant.
// Exactly one variant is active for the lifetime of the process, so either
// the token fields or the ack field is meaningful, never both.
type State struct {
  Remote bool
  Token  string // remote variant, empty means no usable token
  Acked  bool   // checkbox variant
}

// Provider abstracts over the two captcha variants. The variant is fixed at
// construction from configuration, callers never branch on a site key again.
type Provider interface {
  Name() string
  SiteKey() string
  ScriptUrl() string

  // Collect derives the captcha state for one submission from the posted
  // form. It never returns an error, failures to reach the challenge
  // service degrade to an absent token and are logged only.
  Collect(ctx context.Context, log *logrus.Entry, form url.Values) State
}

type Config struct {
  SiteKey   string
  ScriptUrl string
  VerifyUrl string
  Timeout   time.Duration
  Client    *http.Client
}

// New selects the remote challenge variant when a site key is configured and
// the manual checkbox otherwise.
func New(config Config) Provider {
  if config.SiteKey != "" {
    client := config.Client
    if client == nil {
      client = http.DefaultClient
    }
    timeout := config.Timeout
    if timeout <= 0 {
      timeout = 3 * time.Second
    }
    return &RemoteChallenge{
      siteKey:   config.SiteKey,
      scriptUrl: config.ScriptUrl,
      verifyUrl: config.VerifyUrl,
      timeout:   timeout,
      client:    client,
    }
  }
  return &Checkbox{}
}
