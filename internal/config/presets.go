package config

import "sort"

// Viewport is a named surface size.
type Viewport struct {
	Name   string
	Width  float64
	Height float64
}

var Presets = map[string]Viewport{
	"mobile":    {Name: "mobile", Width: 390, Height: 844},
	"tablet":    {Name: "tablet", Width: 768, Height: 1024},
	"laptop":    {Name: "laptop", Width: 1366, Height: 768},
	"desktop":   {Name: "desktop", Width: 1920, Height: 1080},
	"ultrawide": {Name: "ultrawide", Width: 3440, Height: 1440},
}

func GetPreset(name string) *Viewport {
	vp, ok := Presets[name]
	if !ok {
		return nil
	}
	return &vp
}

// ListPresets returns preset names ordered by width.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return Presets[names[i]].Width < Presets[names[j]].Width
	})
	return names
}
