package marketing

import (
	"strconv"
	"strings"
)

// Animation presets.
const (
	PresetNone   = "none"
	PresetSubtle = "subtle"
	PresetFull   = "full"
)

// AnimationClass returns class when animations are enabled and "" otherwise.
func AnimationClass(enabled bool, class string) string {
	if !enabled {
		return ""
	}
	return class
}

// StaggerDelay returns the CSS delay for the index-th item, e.g. "200ms".
func StaggerDelay(index, baseMs int) string {
	if index < 0 {
		index = 0
	}
	return strconv.Itoa(index*baseMs) + "ms"
}

// Animations binds the feature flag and preset for templates.
type Animations struct {
	Enabled bool
	Preset  string
}

// Class returns the preset-qualified animation classes for name ("fade-up",
// "fade-in", "scale-in"). A disabled flag or the none preset yields "".
func (a Animations) Class(name string) string {
	preset := a.Preset
	if preset == "" {
		preset = PresetSubtle
	}
	on := a.Enabled && preset != PresetNone && name != ""
	return AnimationClass(on, strings.Join([]string{"animate", "animate-" + name, "animate--" + preset}, " "))
}

// Delay returns the stagger delay for index, or "" when disabled.
func (a Animations) Delay(index int) string {
	if !a.Enabled || a.Preset == PresetNone {
		return ""
	}
	base := 100
	if a.Preset == PresetFull {
		base = 150
	}
	return StaggerDelay(index, base)
}
