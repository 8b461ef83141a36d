package credentials

import (
  "net/http"
  "github.com/sirupsen/logrus"
  "github.com/gin-gonic/gin"

  "github.com/charmixer/loginui/app"
  "github.com/charmixer/loginui/strength"
)

type strengthForm struct {
  Password string `form:"password" json:"password"`
}

// SubmitStrength backs the strength meter on the login page. The page posts
// the password on every change and renders the returned descriptor.
func SubmitStrength(env *app.Environment) gin.HandlerFunc {
  fn := func(c *gin.Context) {

    log := c.MustGet(env.Constants.LogKey).(*logrus.Entry)
    log = log.WithFields(logrus.Fields{
      "func": "SubmitStrength",
    })

    var form strengthForm
    err := c.Bind(&form)
    if err != nil {
      log.Debug(err.Error())
      c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
      return
    }

    c.JSON(http.StatusOK, strength.Evaluate(form.Password))
  }
  return gin.HandlerFunc(fn)
}
