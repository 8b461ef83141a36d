package credentials

import (
  "net/http"
  "reflect"
  "strings"
  "gopkg.in/go-playground/validator.v9"
  "github.com/sirupsen/logrus"
  "github.com/gin-gonic/gin"
  "github.com/gorilla/csrf"
  "github.com/gin-contrib/sessions"

  "github.com/charmixer/loginui/app"
  "github.com/charmixer/loginui/captcha"
  "github.com/charmixer/loginui/config"
  "github.com/charmixer/loginui/gateway/authapi"
  "github.com/charmixer/loginui/persist"
  "github.com/charmixer/loginui/validators"
)

type loginForm struct {
  Email      string `form:"email" validate:"required,emailformat"`
  Password   string `form:"password" validate:"required,min=8"`
  Remember   string `form:"remember"`
  Captcha    string `form:"captcha"`
  CaptchaAck string `form:"captcha_ack"`
}

func ShowLogin(env *app.Environment) gin.HandlerFunc {
  fn := func(c *gin.Context) {

    log := c.MustGet(env.Constants.LogKey).(*logrus.Entry)
    log = log.WithFields(logrus.Fields{
      "func": "ShowLogin",
    })

    session := sessions.DefaultMany(c, env.Constants.SessionStoreKey)

    // Retain the values that was submitted, except passwords!
    var email string
    if v := session.Get(AUTHENTICATE_EMAIL); v != nil {
      email, _ = v.(string)
    }

    flashes := session.Flashes(AUTHENTICATE_ERRORS)
    err := session.Save() // Remove flashes read, and save submit fields
    if err != nil {
      log.Debug(err.Error())
    }

    var errorEmail string
    var errorPassword string
    var errorCaptcha string

    if len(flashes) > 0 {
      errorsMap := flashes[0].(map[string][]string)
      for k, v := range errorsMap {

        if k == FIELD_EMAIL && len(v) > 0 {
          errorEmail = strings.Join(v, ", ")
        }
        if k == FIELD_PASSWORD && len(v) > 0 {
          errorPassword = strings.Join(v, ", ")
        }
        if k == FIELD_CAPTCHA && len(v) > 0 {
          errorCaptcha = strings.Join(v, ", ")
        }

      }
    }

    c.HTML(http.StatusOK, "login.html", gin.H{
      "title": "Sign in",
      csrf.TemplateTag: csrf.TemplateField(c.Request),
      "email": email,
      "errorEmail": errorEmail,
      "errorPassword": errorPassword,
      "errorCaptcha": errorCaptcha,
      "captchaRemote": env.Captcha.SiteKey() != "",
      "captchaSiteKey": env.Captcha.SiteKey(),
      "captchaScriptUrl": env.Captcha.ScriptUrl(),
      "loginUrl": config.GetString("loginui.public.endpoints.login"),
      "strengthUrl": config.GetString("loginui.public.endpoints.login") + "/strength",
      "socialUrl": config.GetString("loginui.public.endpoints.login") + "/social",
      "providers": []string{"google", "github"},
    })
  }
  return gin.HandlerFunc(fn)
}

func SubmitLogin(env *app.Environment) gin.HandlerFunc {
  fn := func(c *gin.Context) {

    log := c.MustGet(env.Constants.LogKey).(*logrus.Entry)
    log = log.WithFields(logrus.Fields{
      "func": "SubmitLogin",
    })

    var form loginForm
    err := c.Bind(&form)
    if err != nil {
      log.Debug(err.Error())
      c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
      return
    }

    session := sessions.DefaultMany(c, env.Constants.SessionStoreKey)

    // Save values if submit fails
    session.Set(AUTHENTICATE_EMAIL, form.Email)
    err = session.Save()
    if err != nil {
      log.Debug(err.Error())
    }

    // Captcha first. Failures to reach the challenge service are swallowed
    // here and become an absent token the validation below rejects.
    state := env.Captcha.Collect(c.Request.Context(), log, c.Request.PostForm)

    errors := validateLoginForm(log, form, state)
    if len(errors) > 0 {
      failAuthentication(c, log, session, errors)
      return
    }

    loginRequest := authapi.LoginRequest{
      Email: form.Email,
      Password: form.Password,
    }
    if state.Token != "" {
      token := state.Token
      loginRequest.Captcha = &token
    }

    client := authapi.NewAuthApiClient(env.AuthApiConfig)

    loginUrl := config.GetString("authapi.public.url") + config.GetString("authapi.public.endpoints.login")
    result, err := authapi.Login(loginUrl, client, loginRequest)
    if err != nil {
      log.WithFields(logrus.Fields{"email": form.Email}).Debug(err.Error())
      errors[FIELD_EMAIL] = append(errors[FIELD_EMAIL], "Network error")
      failAuthentication(c, log, session, errors)
      return
    }

    if !result.Ok() {
      message := result.Message
      if message == "" {
        message = "Login failed"
      }
      log.WithFields(logrus.Fields{"status": result.StatusCode}).Debug("Authentication rejected")
      errors[FIELD_EMAIL] = append(errors[FIELD_EMAIL], message)
      failAuthentication(c, log, session, errors)
      return
    }

    if result.Token == "" {
      log.Debug("Auth api returned success without a token")
      errors[FIELD_EMAIL] = append(errors[FIELD_EMAIL], "No token received from server")
      failAuthentication(c, log, session, errors)
      return
    }

    // Authenticated, persist and leave the page.
    durable := sessions.DefaultMany(c, env.Constants.SessionDurableStoreKey)
    ephemeral := sessions.DefaultMany(c, env.Constants.SessionEphemeralStoreKey)
    persist.Save(log, durable, ephemeral, c.Writer, persist.Payload{
      Token: result.Token,
      User: result.User,
    }, form.Remember != "")

    // Cleanup session
    session.Delete(AUTHENTICATE_EMAIL)
    session.Delete(AUTHENTICATE_ERRORS)
    err = session.Save()
    if err != nil {
      log.Debug(err.Error())
    }

    redirectTo := result.Redirect
    if redirectTo == "" {
      redirectTo = config.GetString("loginui.default.redirect")
    }

    log.WithFields(logrus.Fields{"redirect_to": redirectTo}).Debug("Redirecting")
    c.Redirect(http.StatusFound, redirectTo)
    c.Abort()
  }
  return gin.HandlerFunc(fn)
}

// validateLoginForm runs every rule independently so multiple errors can
// surface at once. Overall pass is an empty map.
func validateLoginForm(log *logrus.Entry, form loginForm, state captcha.State) map[string][]string {
  errors := make(map[string][]string)

  validate := validator.New()
  validate.RegisterValidation("notblank", validators.NotBlank)
  validate.RegisterValidation("emailformat", validators.EmailFormat)
  err := validate.Struct(form)
  if err != nil {

    // Validation syntax is invalid
    if err, ok := err.(*validator.InvalidValidationError); ok {
      log.Debug(err.Error())
      return errors
    }

    reflected := reflect.ValueOf(form) // Use reflector to reverse engineer struct
    for _, err := range err.(validator.ValidationErrors) {

      // Attempt to find field by name and get form tag name
      field, _ := reflected.Type().FieldByName(err.StructField())
      var name string

      // If form tag doesn't exist, use lower case of name
      if name = field.Tag.Get("form"); name == "" {
        name = strings.ToLower(err.StructField())
      }

      switch name {
      case FIELD_EMAIL:
        errors[name] = append(errors[name], "Enter a valid email")
        break
      case FIELD_PASSWORD:
        errors[name] = append(errors[name], "Password must be at least 8 characters")
        break
      default:
        errors[name] = append(errors[name], "Invalid")
        break
      }
    }

  }

  if state.Remote {
    if state.Token == "" {
      errors[FIELD_CAPTCHA] = append(errors[FIELD_CAPTCHA], "Captcha required")
    }
  } else {
    if !state.Acked {
      errors[FIELD_CAPTCHA] = append(errors[FIELD_CAPTCHA], "Please confirm you're not a robot")
    }
  }

  return errors
}

func failAuthentication(c *gin.Context, log *logrus.Entry, session sessions.Session, errors map[string][]string) {
  session.AddFlash(errors, AUTHENTICATE_ERRORS)
  err := session.Save()
  if err != nil {
    log.Debug(err.Error())
  }

  redirectTo := config.GetString("loginui.public.endpoints.login")
  log.WithFields(logrus.Fields{"redirect_to": redirectTo}).Debug("Redirecting")
  c.Redirect(http.StatusFound, redirectTo)
  c.Abort()
}
