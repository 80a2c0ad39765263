package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/cstrafe/internal/model"
)

// ErrInvalidBinding is returned for a movement key that cannot be captured globally.
var ErrInvalidBinding = errors.New("invalid key binding")

// DefaultKeys returns the WASD bindings.
func DefaultKeys() model.KeyBindings {
	return model.KeyBindings{Forward: "W", Backward: "S", Left: "A", Right: "D"}
}

// NormalizeBinding reduces a configured value to its first character, upper-cased.
// An empty value yields fallback.
func NormalizeBinding(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	r, _ := utf8.DecodeRuneInString(value)
	return strings.ToUpper(string(r))
}

// ValidateBinding checks that key is a single A-Z or 0-9 character.
func ValidateBinding(name, key string) error {
	if len(key) != 1 {
		return fmt.Errorf("%w: %s must be a single character, got %q", ErrInvalidBinding, name, key)
	}
	ch := key[0]
	if (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') {
		return fmt.Errorf("%w: %s must be A-Z or 0-9, got %q", ErrInvalidBinding, name, key)
	}
	return nil
}

// ResolveKeys normalizes and validates every binding, filling gaps from DefaultKeys.
func ResolveKeys(b model.KeyBindings) (model.KeyBindings, error) {
	def := DefaultKeys()
	out := model.KeyBindings{
		Forward:  NormalizeBinding(b.Forward, def.Forward),
		Backward: NormalizeBinding(b.Backward, def.Backward),
		Left:     NormalizeBinding(b.Left, def.Left),
		Right:    NormalizeBinding(b.Right, def.Right),
	}
	for _, kv := range []struct{ name, key string }{
		{"forward", out.Forward},
		{"backward", out.Backward},
		{"left", out.Left},
		{"right", out.Right},
	} {
		if err := ValidateBinding(kv.name, kv.key); err != nil {
			return model.KeyBindings{}, err
		}
	}
	return out, nil
}
