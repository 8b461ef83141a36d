package persist

import (
  "encoding/json"
  "net/http"
  "time"
  "github.com/gin-contrib/sessions"
  "github.com/sirupsen/logrus"
)

// Storage key holding the serialized payload in either store.
const StorageKey = "auth"

// Cookie carrying the raw token next to the stored payload.
const CookieName = "auth_token"

const RememberMaxAge = 30 * 24 * time.Hour

// Store is the slice of a session store the persister needs. The gin
// sessions.Session type satisfies it, tests use an in memory fake.
type Store interface {
  Options(sessions.Options)
  Set(key interface{}, val interface{})
  Clear()
  Save() error
}

// Payload is what the auth api handed back on success. Token and user are
// written together or not at all.
type Payload struct {
  Token string          `json:"token"`
  User  json.RawMessage `json:"user"`
}

// Save writes the payload to the durable store when remember is set and to
// the ephemeral store otherwise, then mirrors the token into a cookie with a
// matching expiry policy. Failures are logged and swallowed, persistence
// must never block the redirect that follows a successful login.
func Save(log *logrus.Entry, durable Store, ephemeral Store, w http.ResponseWriter, payload Payload, remember bool) {
  data, err := json.Marshal(payload)
  if err != nil {
    // Skip the store write entirely rather than persist half a payload. The
    // cookie write below is still attempted.
    log.Debug(err.Error())
  } else {
    store := ephemeral
    options := sessions.Options{
      Path: "/",
      MaxAge: 0, // browser session scoped
      HttpOnly: true,
    }
    if remember {
      store = durable
      options.MaxAge = int(RememberMaxAge / time.Second)
    }

    store.Options(options)
    store.Set(StorageKey, string(data))
    err = store.Save()
    if err != nil {
      log.Debug(err.Error())
    }
  }

  cookie := &http.Cookie{
    Name: CookieName,
    Value: payload.Token,
    Path: "/",
    SameSite: http.SameSiteStrictMode,
  }
  if remember {
    cookie.Expires = time.Now().Add(RememberMaxAge)
  }
  http.SetCookie(w, cookie)
}

// Clear removes the payload from both stores and expires the cookie. Used by
// logout, failures are logged only.
func Clear(log *logrus.Entry, durable Store, ephemeral Store, w http.ResponseWriter) {
  for _, store := range []Store{durable, ephemeral} {
    store.Options(sessions.Options{
      Path: "/",
      MaxAge: -1,
      HttpOnly: true,
    })
    store.Clear()
    err := store.Save()
    if err != nil {
      log.Debug(err.Error())
    }
  }

  http.SetCookie(w, &http.Cookie{
    Name: CookieName,
    Value: "",
    Path: "/",
    MaxAge: -1,
    SameSite: http.SameSiteStrictMode,
  })
}
