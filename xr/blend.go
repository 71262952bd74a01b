// Package xr models the XR runtime the demo runs against: session
// configuration, environment blend mode negotiation and per-eye view
// poses.
package xr

import (
	"errors"
	"fmt"
)

// BlendMode is how rendered frames are composited with the real world.
type BlendMode uint8

const (
	BlendOpaque BlendMode = iota + 1
	BlendAdditive
	BlendAlphaBlend
)

var blendNames = map[BlendMode]string{
	BlendOpaque:     "opaque",
	BlendAdditive:   "additive",
	BlendAlphaBlend: "alpha_blend",
}

// String returns the config name of the mode.
func (m BlendMode) String() string {
	if name, ok := blendNames[m]; ok {
		return name
	}
	return fmt.Sprintf("blend(%d)", uint8(m))
}

// SeeThrough reports whether the real world shows through cleared pixels.
func (m BlendMode) SeeThrough() bool {
	return m == BlendAdditive || m == BlendAlphaBlend
}

// ParseBlendMode converts a config name to a BlendMode.
func ParseBlendMode(s string) (BlendMode, error) {
	for m, name := range blendNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown blend mode %q", s)
}

// ParseBlendModes converts a list of config names.
func ParseBlendModes(names []string) ([]BlendMode, error) {
	modes := make([]BlendMode, 0, len(names))
	for _, n := range names {
		m, err := ParseBlendMode(n)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// ErrNoBlendMode is returned when no preferred mode is supported.
var ErrNoBlendMode = errors.New("no supported blend mode")

// SelectBlendMode returns the first mode in preference order that the
// runtime supports.
func SelectBlendMode(preference, supported []BlendMode) (BlendMode, error) {
	for _, want := range preference {
		for _, have := range supported {
			if want == have {
				return want, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: preferred %v, runtime offers %v", ErrNoBlendMode, preference, supported)
}
