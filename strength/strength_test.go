package strength

import (
  "testing"
  "github.com/stretchr/testify/assert"
)

func TestEvaluateEmptyPassword(t *testing.T) {
  d := Evaluate("")
  assert.Equal(t, 0, d.Score)
  assert.Equal(t, TooShort, d.Label)
  assert.Equal(t, "strength-none", d.ColorClass)
}

func TestEvaluateScoring(t *testing.T) {
  tests := []struct {
    password string
    score    int
    label    Label
  }{
    {"a", 0, VeryWeak},                 // non empty but matches no rule
    {"abcdefgh", 1, VeryWeak},          // length 8
    {"abcdefghijkl", 2, Weak},          // length 12
    {"Abcdefghijkl", 3, Okay},          // + uppercase
    {"Abcdefghijk1", 4, Good},          // + digit
    {"Abcdefgh1!@#", 5, Strong},        // all five rules
    {"Ab1!", 3, Okay},                  // short but varied, length rules unmet
    {"password1", 2, Weak},             // length 8 + digit
  }

  for _, tt := range tests {
    d := Evaluate(tt.password)
    assert.Equal(t, tt.score, d.Score, "password %q", tt.password)
    assert.Equal(t, tt.label, d.Label, "password %q", tt.password)
  }
}

func TestEvaluateNonAsciiCountsAsSymbol(t *testing.T) {
  // Multibyte characters count as one rune for the length rules and as a
  // character outside [A-Za-z0-9].
  d := Evaluate("påssword")
  assert.Equal(t, 2, d.Score) // length 8 + symbol
  assert.Equal(t, Weak, d.Label)
}
