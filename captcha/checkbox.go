package captcha

import (
  "net/url"
  "golang.org/x/net/context"
  "github.com/sirupsen/logrus"
)

// Checkbox is the fallback variant used when no site key is configured. The
// user confirms a plain checkbox and its state is the captcha state.
type Checkbox struct {
}

func (p *Checkbox) Name() string {
  return "checkbox"
}

func (p *Checkbox) SiteKey() string {
  return ""
}

func (p *Checkbox) ScriptUrl() string {
  return ""
}

func (p *Checkbox) Collect(ctx context.Context, log *logrus.Entry, form url.Values) State {
  return State{
    Remote: false,
    Acked: form.Get(AckField) != "",
  }
}
