//go:build !windows

package prompt

import "fyne.io/fyne/v2"

func keepOnTop(fyne.Window) {}
