package credentials

import (
  "net/http"
  "github.com/sirupsen/logrus"
  "github.com/gin-gonic/gin"

  "github.com/charmixer/loginui/app"
  "github.com/charmixer/loginui/config"
  "github.com/charmixer/loginui/gateway/authapi"
)

// Provider slugs the auth api knows how to hand off to.
var socialProviders = map[string]bool{
  "google": true,
  "github": true,
}

// StartSocialLogin hands the browser over to the auth api's oauth entry
// point. Redirect only, no response contract is consumed here.
func StartSocialLogin(env *app.Environment) gin.HandlerFunc {
  fn := func(c *gin.Context) {

    log := c.MustGet(env.Constants.LogKey).(*logrus.Entry)
    log = log.WithFields(logrus.Fields{
      "func": "StartSocialLogin",
    })

    provider := c.Query("provider")
    if !socialProviders[provider] {
      log.WithFields(logrus.Fields{"provider": provider}).Debug("Unknown provider")
      c.AbortWithStatus(http.StatusNotFound)
      return
    }

    oauthUrl := config.GetString("authapi.public.url") + config.GetString("authapi.public.endpoints.oauth")
    redirectTo, err := authapi.OAuthRedirectUrl(oauthUrl, provider)
    if err != nil {
      log.Debug(err.Error())
      c.AbortWithStatus(http.StatusInternalServerError)
      return
    }

    log.WithFields(logrus.Fields{"provider": provider, "redirect_to": redirectTo}).Debug("Redirecting")
    c.Redirect(http.StatusFound, redirectTo)
    c.Abort()
  }
  return gin.HandlerFunc(fn)
}
