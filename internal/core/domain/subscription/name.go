package subscription

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

const nameMaxGraphemes = 256

// forbiddenNameCharacters are rejected anywhere in a subscriber name.
const forbiddenNameCharacters = `/()"<>\{}`

// Name is a validated subscriber name. The zero value is invalid; obtain one
// through ParseName.
type Name struct {
	value string
}

// ParseName validates a raw subscriber name. Checks run in order and stop at
// the first failure: empty after trimming, longer than 256 grapheme clusters,
// contains a forbidden character.
func ParseName(raw string) (Name, error) {
	if strings.TrimSpace(raw) == "" {
		return Name{}, &ValidationError{Message: "subscriber name cannot be empty"}
	}

	if uniseg.GraphemeClusterCount(raw) > nameMaxGraphemes {
		return Name{}, &ValidationError{
			Message: fmt.Sprintf("subscriber name cannot be longer than %d characters", nameMaxGraphemes),
		}
	}

	if strings.ContainsAny(raw, forbiddenNameCharacters) {
		return Name{}, &ValidationError{
			Message: fmt.Sprintf("subscriber name cannot contain any of the following characters: %s", forbiddenNameCharacters),
		}
	}

	return Name{value: raw}, nil
}

func (n Name) String() string {
	return n.value
}
