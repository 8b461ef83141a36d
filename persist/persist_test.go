package persist

import (
  "encoding/json"
  "errors"
  "net/http"
  "net/http/httptest"
  "testing"
  "time"
  "github.com/gin-contrib/sessions"
  "github.com/sirupsen/logrus"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
)

type fakeStore struct {
  options sessions.Options
  values  map[interface{}]interface{}
  saved   bool
  saveErr error
  cleared bool
}

func newFakeStore() *fakeStore {
  return &fakeStore{values: make(map[interface{}]interface{})}
}

func (s *fakeStore) Options(o sessions.Options) { s.options = o }
func (s *fakeStore) Set(key interface{}, val interface{}) { s.values[key] = val }
func (s *fakeStore) Clear() { s.cleared = true; s.values = make(map[interface{}]interface{}) }
func (s *fakeStore) Save() error { s.saved = true; return s.saveErr }

func testLog() *logrus.Entry {
  logger := logrus.New()
  logger.SetLevel(logrus.PanicLevel)
  return logrus.NewEntry(logger)
}

func payload() Payload {
  return Payload{Token: "abc", User: json.RawMessage(`{"name":"Jo"}`)}
}

func authCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
  response := recorder.Result()
  for _, cookie := range response.Cookies() {
    if cookie.Name == CookieName {
      return cookie
    }
  }
  t.Fatalf("no %s cookie set", CookieName)
  return nil
}

func TestSaveRemembered(t *testing.T) {
  durable := newFakeStore()
  ephemeral := newFakeStore()
  recorder := httptest.NewRecorder()

  Save(testLog(), durable, ephemeral, recorder, payload(), true)

  require.Contains(t, durable.values, StorageKey)
  assert.JSONEq(t, `{"token":"abc","user":{"name":"Jo"}}`, durable.values[StorageKey].(string))
  assert.True(t, durable.saved)
  assert.Equal(t, int(RememberMaxAge/time.Second), durable.options.MaxAge)

  // Nothing may leak into the other scope.
  assert.NotContains(t, ephemeral.values, StorageKey)
  assert.False(t, ephemeral.saved)

  cookie := authCookie(t, recorder)
  assert.Equal(t, "abc", cookie.Value)
  assert.Equal(t, "/", cookie.Path)
  assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
  assert.True(t, cookie.Expires.After(time.Now()))
}

func TestSaveNotRemembered(t *testing.T) {
  durable := newFakeStore()
  ephemeral := newFakeStore()
  recorder := httptest.NewRecorder()

  Save(testLog(), durable, ephemeral, recorder, payload(), false)

  require.Contains(t, ephemeral.values, StorageKey)
  assert.Equal(t, 0, ephemeral.options.MaxAge)
  assert.NotContains(t, durable.values, StorageKey)

  // Session cookie, no expiry.
  cookie := authCookie(t, recorder)
  assert.Equal(t, "abc", cookie.Value)
  assert.True(t, cookie.Expires.IsZero())
}

func TestSaveStoreFailureStillSetsCookie(t *testing.T) {
  durable := newFakeStore()
  durable.saveErr = errors.New("storage full")
  ephemeral := newFakeStore()
  recorder := httptest.NewRecorder()

  // Must not panic and must still attempt the cookie write.
  Save(testLog(), durable, ephemeral, recorder, payload(), true)

  cookie := authCookie(t, recorder)
  assert.Equal(t, "abc", cookie.Value)
}

func TestClear(t *testing.T) {
  durable := newFakeStore()
  durable.values[StorageKey] = "stale"
  ephemeral := newFakeStore()
  ephemeral.values[StorageKey] = "stale"
  recorder := httptest.NewRecorder()

  Clear(testLog(), durable, ephemeral, recorder)

  assert.True(t, durable.cleared)
  assert.True(t, ephemeral.cleared)
  assert.Equal(t, -1, durable.options.MaxAge)

  cookie := authCookie(t, recorder)
  assert.Equal(t, "", cookie.Value)
  assert.Equal(t, -1, cookie.MaxAge)
}
