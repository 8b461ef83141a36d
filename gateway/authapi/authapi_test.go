package authapi

import (
  "encoding/json"
  "io/ioutil"
  "net/http"
  "net/http/httptest"
  "testing"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
)

func TestLoginSuccess(t *testing.T) {
  var received LoginRequest
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    body, _ := ioutil.ReadAll(r.Body)
    require.NoError(t, json.Unmarshal(body, &received))
    w.Header().Set("Content-Type", "application/json")
    w.Write([]byte(`{"token": "abc", "user": {"name": "Jo"}, "redirect": "/welcome"}`))
  }))
  defer server.Close()

  captcha := "captcha-token"
  result, err := Login(server.URL, NewAuthApiClient(nil), LoginRequest{
    Email: "user@example.com",
    Password: "longenough1",
    Captcha: &captcha,
  })
  require.NoError(t, err)

  assert.True(t, result.Ok())
  assert.Equal(t, "abc", result.Token)
  assert.Equal(t, "/welcome", result.Redirect)
  assert.JSONEq(t, `{"name": "Jo"}`, string(result.User))

  assert.Equal(t, "user@example.com", received.Email)
  require.NotNil(t, received.Captcha)
  assert.Equal(t, "captcha-token", *received.Captcha)
}

func TestLoginNullCaptchaOnWire(t *testing.T) {
  var raw map[string]interface{}
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    body, _ := ioutil.ReadAll(r.Body)
    require.NoError(t, json.Unmarshal(body, &raw))
    w.Write([]byte(`{"token": "abc", "user": {}}`))
  }))
  defer server.Close()

  _, err := Login(server.URL, NewAuthApiClient(nil), LoginRequest{Email: "user@example.com", Password: "longenough1"})
  require.NoError(t, err)

  captcha, present := raw["captcha"]
  assert.True(t, present)
  assert.Nil(t, captcha)
}

func TestLoginRejected(t *testing.T) {
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    w.WriteHeader(http.StatusUnauthorized)
    w.Write([]byte(`{"message": "bad credentials"}`))
  }))
  defer server.Close()

  result, err := Login(server.URL, NewAuthApiClient(nil), LoginRequest{})
  require.NoError(t, err)

  assert.False(t, result.Ok())
  assert.Equal(t, http.StatusUnauthorized, result.StatusCode)
  assert.Equal(t, "bad credentials", result.Message)
}

func TestLoginRejectedWithoutMessage(t *testing.T) {
  server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    w.WriteHeader(http.StatusBadGateway)
    w.Write([]byte("upstream timeout"))
  }))
  defer server.Close()

  result, err := Login(server.URL, NewAuthApiClient(nil), LoginRequest{})
  require.NoError(t, err)

  assert.False(t, result.Ok())
  assert.Equal(t, "", result.Message)
}

func TestLoginConnectionRefused(t *testing.T) {
  result, err := Login("http://127.0.0.1:1/api/auth/login", NewAuthApiClient(nil), LoginRequest{})
  assert.Error(t, err)
  assert.Nil(t, result)
}

func TestOAuthRedirectUrl(t *testing.T) {
  u, err := OAuthRedirectUrl("https://auth.example.com/api/auth/oauth", "github")
  require.NoError(t, err)
  assert.Equal(t, "https://auth.example.com/api/auth/oauth?provider=github", u)
}
