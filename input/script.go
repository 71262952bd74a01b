package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadScript is wrapped by all script parse errors.
var ErrBadScript = errors.New("bad key script")

// Step holds a key combination for a number of ticks.
type Step struct {
	Keys  KeyState
	Ticks int
}

// Script replays key combinations for headless runs.
// The script loops once it reaches the end.
type Script struct {
	steps []Step
	total int
	pos   int
}

// ParseScript parses a comma separated list of COMBO*TICKS entries,
// e.g. "W*30,Q*10,WD*20,-*5". "-" is an empty combination and a
// missing "*TICKS" means one tick. An empty string yields a script that
// never presses anything.
func ParseScript(src string) (*Script, error) {
	s := &Script{}
	src = strings.TrimSpace(src)
	if src == "" {
		return s, nil
	}

	for i, entry := range strings.Split(src, ",") {
		entry = strings.TrimSpace(entry)
		combo, count, hasCount := strings.Cut(entry, "*")
		ticks := 1
		if hasCount {
			n, err := strconv.Atoi(strings.TrimSpace(count))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%w: entry %d %q: tick count must be a positive integer", ErrBadScript, i, entry)
			}
			ticks = n
		}

		keys, err := parseCombo(strings.TrimSpace(combo))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d %q: %v", ErrBadScript, i, entry, err)
		}
		s.steps = append(s.steps, Step{Keys: keys, Ticks: ticks})
		s.total += ticks
	}
	return s, nil
}

func parseCombo(combo string) (KeyState, error) {
	if combo == "" {
		return 0, errors.New("empty key combination")
	}
	if combo == "-" {
		return 0, nil
	}
	var keys KeyState
	for _, r := range combo {
		k, ok := KeyFromRune(r)
		if !ok {
			return 0, fmt.Errorf("unknown key %q", r)
		}
		keys = keys.With(k)
	}
	return keys, nil
}

// Len returns the number of ticks in one pass of the script.
func (s *Script) Len() int {
	return s.total
}

// Steps returns the parsed steps.
func (s *Script) Steps() []Step {
	return s.steps
}

// Next returns the keys for the next tick and advances the script.
func (s *Script) Next() KeyState {
	if s.total == 0 {
		return 0
	}
	keys := s.At(s.pos)
	s.pos = (s.pos + 1) % s.total
	return keys
}

// At returns the keys held at the given tick (wrapping).
func (s *Script) At(tick int) KeyState {
	if s.total == 0 {
		return 0
	}
	tick %= s.total
	if tick < 0 {
		tick += s.total
	}
	for _, st := range s.steps {
		if tick < st.Ticks {
			return st.Keys
		}
		tick -= st.Ticks
	}
	return 0
}
