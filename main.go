package main

import (
  "encoding/gob"
  "os"
  "time"
  "github.com/sirupsen/logrus"
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/sessions"
  "github.com/gin-contrib/sessions/cookie"
  "github.com/gorilla/csrf"
  adapter "github.com/gwatts/gin-adapter"
  "github.com/pborman/getopt"
  "golang.org/x/oauth2/clientcredentials"

  "github.com/charmixer/loginui/app"
  "github.com/charmixer/loginui/captcha"
  "github.com/charmixer/loginui/config"
  "github.com/charmixer/loginui/controllers/credentials"
)

const appName = "loginui"

var (
  logDebug int // Set to 1 to enable debug
  logFormat string // Currently only supports default and json

  log *logrus.Logger

  appFields logrus.Fields
)

func init() {
  log = logrus.New()

  err := config.InitConfigurations()
  if err != nil {
    log.Panic(err.Error())
    return
  }

  logDebug = config.GetInt("log.debug")
  logFormat = config.GetString("log.format")

  // We only have 2 log levels. Things developers care about (debug) and things the user of the app cares about (info)
  if logDebug == 1 {
    log.SetLevel(logrus.DebugLevel)
  } else {
    log.SetLevel(logrus.InfoLevel)
  }
  if logFormat == "json" {
    log.SetFormatter(&logrus.JSONFormatter{})
  }

  appFields = logrus.Fields{
    "appname": appName,
    "log.debug": logDebug,
    "log.format": logFormat,
  }

  gob.Register(make(map[string][]string)) // Flashed validation errors.
}

func main() {

  optHelp := getopt.BoolLong("help", 0, "Help")
  getopt.Parse()

  if *optHelp {
    getopt.Usage()
    os.Exit(0)
  }

  // Loginui may authenticate itself towards the auth api using client
  // credentials. When no client id is configured the api is called plainly.
  var authApiConfig *clientcredentials.Config
  if config.GetString("oauth2.client.id") != "" {
    authApiConfig = &clientcredentials.Config{
      ClientID: config.GetString("oauth2.client.id"),
      ClientSecret: config.GetString("oauth2.client.secret"),
      TokenURL: config.GetString("oauth2.token.url"),
      Scopes: config.GetStringSlice("oauth2.scopes.required"),
      AuthStyle: 2, // https://godoc.org/golang.org/x/oauth2#AuthStyle
    }
  }

  // The captcha variant is fixed here for the lifetime of the process.
  captchaProvider := captcha.New(captcha.Config{
    SiteKey: config.GetString("captcha.sitekey"),
    ScriptUrl: config.GetString("captcha.script.url"),
    VerifyUrl: config.GetString("captcha.verify.url"),
    Timeout: time.Duration(config.GetInt("captcha.timeout")) * time.Second,
  })

  env := &app.Environment{
    Constants: &app.EnvironmentConstants{
      RequestIdKey: "RequestId",
      LogKey: "log",

      SessionStoreKey: "loginui",
      SessionDurableStoreKey: "authdurable",
      SessionEphemeralStoreKey: "authsession",
    },
    Logger: log,
    AuthApiConfig: authApiConfig,
    Captcha: captchaProvider,
  }

  serve(env)
}

func serve(env *app.Environment) {
  r := gin.New() // Clean gin to take control with logging.
  r.Use(gin.Recovery())

  r.Use(app.RequestId())
  r.Use(app.RequestLogger(env, appFields))

  sessionAuthKey := config.GetString("session.authKey")
  if sessionAuthKey == "" {
    log.WithFields(appFields).Panic("Missing config session.authKey")
  }

  store := cookie.NewStore([]byte(sessionAuthKey))
  store.Options(sessions.Options{
    MaxAge: 86400,
    Path: "/",
    Secure: true,
    HttpOnly: true,
  })
  r.Use(sessions.SessionsMany([]string{
    env.Constants.SessionStoreKey,
    env.Constants.SessionDurableStoreKey,
    env.Constants.SessionEphemeralStoreKey,
  }, store))

  csrfAuthKey := config.GetString("csrf.authKey")
  if csrfAuthKey == "" {
    log.WithFields(appFields).Panic("Missing config csrf.authKey")
  }

  // Use CSRF on all loginui forms.
  adapterCSRF := adapter.Wrap(csrf.Protect([]byte(csrfAuthKey), csrf.Secure(true)))

  r.LoadHTMLGlob("views/*")

  loginUrl := config.GetString("loginui.public.endpoints.login")
  logoutUrl := config.GetString("loginui.public.endpoints.logout")

  ep := r.Group("/")
  ep.Use(adapterCSRF)
  {
    ep.GET("/", credentials.ShowLogin(env))

    ep.GET(loginUrl, credentials.ShowLogin(env))
    ep.POST(loginUrl, credentials.SubmitLogin(env))
    ep.POST(loginUrl + "/strength", credentials.SubmitStrength(env))
    ep.GET(loginUrl + "/social", credentials.StartSocialLogin(env))

    ep.GET(logoutUrl, credentials.ShowLogout(env))
    ep.POST(logoutUrl, credentials.SubmitLogout(env))
  }

  certPath := config.GetString("serve.tls.cert.path")
  keyPath := config.GetString("serve.tls.key.path")
  if certPath != "" && keyPath != "" {
    r.RunTLS(":" + config.GetString("serve.public.port"), certPath, keyPath)
  } else {
    r.Run(":" + config.GetString("serve.public.port"))
  }
}
