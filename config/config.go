package config

import (
  "strings"
  "github.com/spf13/viper"
)

// All application configuration is resolved through viper so a config file,
// environment variables and defaults can be mixed. Keys are always looked up
// through the getters below, never from ambient globals.
func InitConfigurations() error {
  viper.SetConfigName("loginui")
  viper.SetConfigType("yaml")
  viper.AddConfigPath("/etc/loginui/")
  viper.AddConfigPath(".")

  viper.SetEnvPrefix("LOGINUI")
  viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
  viper.AutomaticEnv()

  setDefaults()

  err := viper.ReadInConfig()
  if err != nil {
    // Running on defaults and environment alone is supported.
    if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
      return err
    }
  }
  return nil
}

func setDefaults() {
  viper.SetDefault("log.debug", 0)
  viper.SetDefault("log.format", "default")

  viper.SetDefault("serve.public.port", "8080")
  viper.SetDefault("serve.tls.cert.path", "")
  viper.SetDefault("serve.tls.key.path", "")

  viper.SetDefault("loginui.public.endpoints.login", "/authenticate")
  viper.SetDefault("loginui.public.endpoints.logout", "/logout")
  viper.SetDefault("loginui.default.redirect", "/")

  viper.SetDefault("authapi.public.url", "")
  viper.SetDefault("authapi.public.endpoints.login", "/api/auth/login")
  viper.SetDefault("authapi.public.endpoints.oauth", "/api/auth/oauth")

  // Captcha is optional. When the sitekey is empty the manual checkbox is used.
  viper.SetDefault("captcha.sitekey", "")
  viper.SetDefault("captcha.script.url", "")
  viper.SetDefault("captcha.verify.url", "")
  viper.SetDefault("captcha.timeout", 3)

  viper.SetDefault("oauth2.client.id", "")
  viper.SetDefault("oauth2.client.secret", "")
  viper.SetDefault("oauth2.token.url", "")
  viper.SetDefault("oauth2.scopes.required", []string{})
}

func GetString(key string) string {
  return viper.GetString(key)
}

func GetStringSlice(key string) []string {
  return viper.GetStringSlice(key)
}

func GetInt(key string) int {
  return viper.GetInt(key)
}
