package validators

import (
  "testing"
  "github.com/stretchr/testify/assert"
  "gopkg.in/go-playground/validator.v9"
)

type emailFixture struct {
  Email string `validate:"emailformat"`
}

type blankFixture struct {
  Value string `validate:"notblank"`
}

func newValidator(t *testing.T) *validator.Validate {
  validate := validator.New()
  assert.NoError(t, validate.RegisterValidation("notblank", NotBlank))
  assert.NoError(t, validate.RegisterValidation("emailformat", EmailFormat))
  return validate
}

func TestEmailFormat(t *testing.T) {
  validate := newValidator(t)

  assert.NoError(t, validate.Struct(emailFixture{Email: "user@example.com"}))
  assert.Error(t, validate.Struct(emailFixture{Email: "not-an-email"}))
  assert.Error(t, validate.Struct(emailFixture{Email: "user@nodot"}))
  assert.Error(t, validate.Struct(emailFixture{Email: "@example.com"}))
  assert.Error(t, validate.Struct(emailFixture{Email: ""}))
}

func TestNotBlank(t *testing.T) {
  validate := newValidator(t)

  assert.NoError(t, validate.Struct(blankFixture{Value: "x"}))
  assert.Error(t, validate.Struct(blankFixture{Value: "   "}))
  assert.Error(t, validate.Struct(blankFixture{Value: ""}))
}
