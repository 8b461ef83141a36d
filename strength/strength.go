package strength

// Heuristic password strength scoring for the login page meter. Scoring is
// pure and cheap enough to run on every keystroke.

type Label string

const (
  TooShort Label = "TooShort"
  VeryWeak Label = "VeryWeak"
  Weak     Label = "Weak"
  Okay     Label = "Okay"
  Good     Label = "Good"
  Strong   Label = "Strong"
)

type Descriptor struct {
  Score      int    `json:"score"`
  Label      Label  `json:"label"`
  ColorClass string `json:"colorClass"`
}

var colorClasses = map[Label]string{
  TooShort: "strength-none",
  VeryWeak: "strength-veryweak",
  Weak:     "strength-weak",
  Okay:     "strength-okay",
  Good:     "strength-good",
  Strong:   "strength-strong",
}

// Evaluate maps a password to a score of 0..5. Each rule contributes one
// point: length >= 8, length >= 12, an uppercase letter, a digit and a
// character outside [A-Za-z0-9]. The empty password short circuits.
func Evaluate(password string) Descriptor {
  if password == "" {
    return Descriptor{Score: 0, Label: TooShort, ColorClass: colorClasses[TooShort]}
  }

  var hasUpper, hasDigit, hasSymbol bool
  runes := []rune(password)
  for _, r := range runes {
    switch {
    case r >= 'A' && r <= 'Z':
      hasUpper = true
    case r >= '0' && r <= '9':
      hasDigit = true
    case r >= 'a' && r <= 'z':
      // lowercase contributes to length only
    default:
      hasSymbol = true
    }
  }

  score := 0
  if len(runes) >= 8 {
    score++
  }
  if len(runes) >= 12 {
    score++
  }
  if hasUpper {
    score++
  }
  if hasDigit {
    score++
  }
  if hasSymbol {
    score++
  }

  label := labelForScore(score)
  return Descriptor{Score: score, Label: label, ColorClass: colorClasses[label]}
}

func labelForScore(score int) Label {
  switch {
  case score <= 1:
    return VeryWeak
  case score == 2:
    return Weak
  case score == 3:
    return Okay
  case score == 4:
    return Good
  default:
    return Strong
  }
}
