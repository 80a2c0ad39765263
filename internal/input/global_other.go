//go:build !windows

package input

import "github.com/verte-zerg/cstrafe/internal/model"

// NewGlobalSource is unavailable off windows.
func NewGlobalSource(model.KeyBindings) (*Poller, error) {
	return nil, ErrUnsupportedPlatform
}
