package entity

import "strings"

// Gender is an optional profile attribute.
type Gender string

const (
	GenderUnknown      Gender = ""
	GenderMale         Gender = "MALE"
	GenderFemale       Gender = "FEMALE"
	GenderOther        Gender = "OTHER"
	GenderNotDisclosed Gender = "PREFER_NOT_TO_SAY"
)

// ParseGender is lenient: unknown or blank input maps to GenderUnknown
// rather than an error, since the field is optional everywhere.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	case "other", "o":
		return GenderOther
	case "prefer_not_to_say", "prefer not to say", "n":
		return GenderNotDisclosed
	default:
		return GenderUnknown
	}
}

func (g Gender) String() string { return string(g) }
