// Package resources embeds the phase icons and tray logos.
package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

//go:embed icons/*.svg logo/*.svg
var assetFS embed.FS

var cache sync.Map

// TrayState selects the tray logo.
type TrayState int

const (
	TrayPaused TrayState = iota
	TrayActive
	TrayAlert
)

var trayLogos = map[TrayState]string{
	TrayPaused: "logo/paused.svg",
	TrayActive: "logo/active.svg",
	TrayAlert:  "logo/alert.svg",
}

// TrayIcon returns the logo for state. Unknown states fall back to paused.
func TrayIcon(state TrayState) fyne.Resource {
	path, ok := trayLogos[state]
	if !ok {
		path = trayLogos[TrayPaused]
	}
	return mustLoad(path)
}

// AppIcon is the window and launcher icon.
func AppIcon() fyne.Resource {
	return TrayIcon(TrayActive)
}

// Icon returns the phase icon stored as icons/<fileName>.
func Icon(fileName string) (fyne.Resource, error) {
	return load("icons/" + fileName)
}

// MustIcon is Icon for names known to be embedded.
func MustIcon(fileName string) fyne.Resource {
	return mustLoad("icons/" + fileName)
}

// PhaseFrames returns the animation frames for a phase icon: the still icon
// followed by its alternate pose, when one exists.
func PhaseFrames(phase string) []fyne.Resource {
	frames := []fyne.Resource{}
	for _, name := range []string{phase + ".svg", phase + "_alt.svg"} {
		if resource, err := Icon(name); err == nil {
			frames = append(frames, resource)
		}
	}
	return frames
}

func mustLoad(path string) fyne.Resource {
	resource, err := load(path)
	if err != nil {
		panic(err)
	}
	return resource
}

func load(path string) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := assetFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	actual, _ := cache.LoadOrStore(path, resource)
	return actual.(fyne.Resource), nil
}
