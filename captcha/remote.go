package captcha

import (
  "bytes"
  "encoding/json"
  "io/ioutil"
  "net/http"
  "net/url"
  "time"
  "golang.org/x/net/context"
  "github.com/sirupsen/logrus"
)

// RemoteChallenge is the variant used when a site key is configured. The page
// loads the challenge script and posts the token it produced, the server then
// verifies the token against the challenge service with a bounded wait. Any
// failure to verify is a soft failure, the token is treated as absent and the
// validator rejects the submission. No retries.
type RemoteChallenge struct {
  siteKey   string
  scriptUrl string
  verifyUrl string
  timeout   time.Duration
  client    *http.Client
}

type verifyRequest struct {
  SiteKey  string `json:"sitekey"`
  Response string `json:"response"`
  Action   string `json:"action"`
}

type verifyResponse struct {
  Success    bool     `json:"success"`
  ErrorCodes []string `json:"error-codes,omitempty"`
}

func (p *RemoteChallenge) Name() string {
  return "remote"
}

func (p *RemoteChallenge) SiteKey() string {
  return p.siteKey
}

func (p *RemoteChallenge) ScriptUrl() string {
  return p.scriptUrl
}

func (p *RemoteChallenge) Collect(ctx context.Context, log *logrus.Entry, form url.Values) State {
  state := State{Remote: true}

  token := form.Get(TokenField)
  if token == "" {
    // The page script may have failed to load or execute. Soft failure, the
    // validator turns the absent token into a field error.
    log.Debug("No captcha token in submission")
    return state
  }

  ok, err := p.verify(ctx, token)
  if err != nil {
    log.WithFields(logrus.Fields{"sitekey": p.siteKey}).Debug(err.Error())
    return state
  }
  if !ok {
    log.WithFields(logrus.Fields{"sitekey": p.siteKey}).Debug("Captcha verification rejected token")
    return state
  }

  state.Token = token
  return state
}

func (p *RemoteChallenge) verify(ctx context.Context, token string) (bool, error) {
  ctx, cancel := context.WithTimeout(ctx, p.timeout)
  defer cancel()

  body, err := json.Marshal(verifyRequest{
    SiteKey: p.siteKey,
    Response: token,
    Action: Action,
  })
  if err != nil {
    return false, err
  }

  request, err := http.NewRequest("POST", p.verifyUrl, bytes.NewBuffer(body))
  if err != nil {
    return false, err
  }
  request = request.WithContext(ctx)
  request.Header.Set("Content-Type", "application/json")

  response, err := p.client.Do(request)
  if err != nil {
    return false, err
  }
  defer response.Body.Close()

  responseData, err := ioutil.ReadAll(response.Body)
  if err != nil {
    return false, err
  }

  var result verifyResponse
  err = json.Unmarshal(responseData, &result)
  if err != nil {
    return false, err
  }

  return result.Success, nil
}
