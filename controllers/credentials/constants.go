package credentials

// Form constants
const AUTHENTICATE_ERRORS = "authenticate.errors"
const AUTHENTICATE_EMAIL = "authenticate.email"

// Field names used as error map keys. The map is flashed through the session
// between submit and render.
const FIELD_EMAIL = "email"
const FIELD_PASSWORD = "password"
const FIELD_CAPTCHA = "captcha"
