package authapi

import (
  "bytes"
  "encoding/json"
  "io/ioutil"
  "net/http"
  "net/url"
  "golang.org/x/net/context"
  "golang.org/x/oauth2/clientcredentials"
)

type LoginRequest struct {
  Email    string  `json:"email"`
  Password string  `json:"password"`
  Captcha  *string `json:"captcha"` // null when no token was acquired
}

type LoginResponse struct {
  Token    string          `json:"token"`
  User     json.RawMessage `json:"user"`
  Redirect string          `json:"redirect,omitempty"`
}

type errorResponse struct {
  Message string `json:"message"`
}

// LoginResult carries the backend verdict without collapsing it into an
// error. A transport level failure is the only error Login returns, the
// caller decides what a rejection or a missing token means for the form.
type LoginResult struct {
  StatusCode int
  Token      string
  User       json.RawMessage
  Redirect   string
  Message    string // backend supplied rejection message, may be empty
}

func (r *LoginResult) Ok() bool {
  return r.StatusCode >= 200 && r.StatusCode < 300
}

type AuthApiClient struct {
  *http.Client
}

// NewAuthApiClient returns a client for the auth api. When client credentials
// are configured the client authenticates itself on every call, otherwise a
// plain http client is used.
func NewAuthApiClient(config *clientcredentials.Config) *AuthApiClient {
  if config == nil || config.ClientID == "" {
    return &AuthApiClient{http.DefaultClient}
  }
  ctx := context.Background()
  return &AuthApiClient{config.Client(ctx)}
}

// config.GetString("authapi.public.url") + config.GetString("authapi.public.endpoints.login")
func Login(loginUrl string, client *AuthApiClient, loginRequest LoginRequest) (*LoginResult, error) {
  body, err := json.Marshal(loginRequest)
  if err != nil {
    return nil, err
  }

  request, err := http.NewRequest("POST", loginUrl, bytes.NewBuffer(body))
  if err != nil {
    return nil, err
  }
  request.Header.Set("Content-Type", "application/json")

  response, err := client.Do(request)
  if err != nil {
    return nil, err
  }
  defer response.Body.Close()

  responseData, err := ioutil.ReadAll(response.Body)
  if err != nil {
    return nil, err
  }

  result := &LoginResult{StatusCode: response.StatusCode}

  if !result.Ok() {
    // The rejection body is optional and best effort.
    var er errorResponse
    if err := json.Unmarshal(responseData, &er); err == nil {
      result.Message = er.Message
    }
    return result, nil
  }

  var loginResponse LoginResponse
  err = json.Unmarshal(responseData, &loginResponse)
  if err != nil {
    return nil, err
  }

  result.Token = loginResponse.Token
  result.User = loginResponse.User
  result.Redirect = loginResponse.Redirect
  return result, nil
}

// config.GetString("authapi.public.url") + config.GetString("authapi.public.endpoints.oauth")
func OAuthRedirectUrl(oauthUrl string, provider string) (string, error) {
  u, err := url.Parse(oauthUrl)
  if err != nil {
    return "", err
  }
  q := u.Query()
  q.Set("provider", provider)
  u.RawQuery = q.Encode()
  return u.String(), nil
}
