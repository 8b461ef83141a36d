package validators

import (
  "regexp"
  "gopkg.in/go-playground/validator.v9"
)

// local@domain.tld shaped. Non empty local part, non empty domain with a dot
// separated suffix. Intentionally loose beyond that, the auth api is the
// authority on whether the address exists.
var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func EmailFormat(fl validator.FieldLevel) bool {
  return emailShape.MatchString(fl.Field().String())
}
