//go:build windows

package input

import (
	"fmt"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"github.com/verte-zerg/cstrafe/internal/model"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	getAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

var globalHotkeys = []Hotkey{
	{Code: int(win.VK_F6), Kind: ToggleVisibility},
	{Code: int(win.VK_F8), Kind: Quit},
	{Code: int(win.VK_OEM_PLUS), Kind: Grow},
	{Code: int(win.VK_OEM_MINUS), Kind: Shrink},
}

func asyncKeyDown(code int) bool {
	state, _, _ := getAsyncKeyState.Call(uintptr(code))
	return state&0x8000 != 0
}

// NewGlobalSource returns a poller over the system-wide key state.
func NewGlobalSource(b model.KeyBindings) (*Poller, error) {
	if err := getAsyncKeyState.Find(); err != nil {
		return nil, fmt.Errorf("failed to load GetAsyncKeyState: %w", err)
	}
	return NewPoller(asyncKeyDown, Watches(b, int(win.VK_LBUTTON), globalHotkeys)), nil
}
