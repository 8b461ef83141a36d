package credentials

import (
  "net/http"
  "github.com/sirupsen/logrus"
  "github.com/gin-gonic/gin"
  "github.com/gorilla/csrf"
  "github.com/gin-contrib/sessions"

  "github.com/charmixer/loginui/app"
  "github.com/charmixer/loginui/config"
  "github.com/charmixer/loginui/persist"
)

func ShowLogout(env *app.Environment) gin.HandlerFunc {
  fn := func(c *gin.Context) {

    c.HTML(http.StatusOK, "logout.html", gin.H{
      "title": "Sign out",
      csrf.TemplateTag: csrf.TemplateField(c.Request),
      "logoutUrl": config.GetString("loginui.public.endpoints.logout"),
    })
  }
  return gin.HandlerFunc(fn)
}

// SubmitLogout drops the stored auth payload from both scopes and expires
// the token cookie. This is like deleting cookies in the browser, no call to
// the auth api is involved.
func SubmitLogout(env *app.Environment) gin.HandlerFunc {
  fn := func(c *gin.Context) {

    log := c.MustGet(env.Constants.LogKey).(*logrus.Entry)
    log = log.WithFields(logrus.Fields{
      "func": "SubmitLogout",
    })

    durable := sessions.DefaultMany(c, env.Constants.SessionDurableStoreKey)
    ephemeral := sessions.DefaultMany(c, env.Constants.SessionEphemeralStoreKey)
    persist.Clear(log, durable, ephemeral, c.Writer)

    redirectTo := config.GetString("loginui.public.endpoints.login")
    log.WithFields(logrus.Fields{"redirect_to": redirectTo}).Debug("Redirecting")
    c.Redirect(http.StatusFound, redirectTo)
    c.Abort()
  }
  return gin.HandlerFunc(fn)
}
