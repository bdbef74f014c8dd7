package config

import "github.com/buzztaiki/ponde/internal/ponde/pointerevent"

// MatchRule matches a device by exact name, restricted to mice (pointer
// capability without gesture capability). See spec.md §3.
type MatchRule struct {
	Name string `yaml:"name"`
}

// Matches reports whether d is a mouse whose name equals r.Name exactly.
func (r MatchRule) Matches(d pointerevent.DeviceInfo) bool {
	return d.IsMouse() && d.Name == r.Name
}
