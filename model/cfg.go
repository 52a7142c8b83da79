package model

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadPairs reads key=value lines. Blank lines and lines starting with '#'
// are skipped, later keys win.
func ReadPairs(reader io.Reader) (map[string]string, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	pairs := make(map[string]string)
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		i := strings.IndexByte(s, '=')
		if i <= 0 {
			return nil, errors.Errorf("line %d: expected key=value, got %q", line, s)
		}
		key := strings.ToLower(strings.TrimSpace(s[:i]))
		pairs[key] = strings.TrimSpace(s[i+1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading settings")
	}
	return pairs, nil
}

// Settings are the arena controls a client starts with.
type Settings struct {
	Preset Preset
	Speed  int
}

func DefaultSettings() Settings {
	return Settings{Preset: Small, Speed: 6}
}

// Apply takes the known keys out of pairs and leaves the rest.
func (s *Settings) Apply(pairs map[string]string) error {
	if v, found := pairs["preset"]; found {
		p, ok := ParsePreset(strings.ToLower(v))
		if !ok {
			return errors.Errorf("unknown preset %q", v)
		}
		s.Preset = p
		delete(pairs, "preset")
	}
	if v, found := pairs["speed"]; found {
		speed, err := ParseSpeed(v)
		if err != nil {
			return err
		}
		s.Speed = speed
		delete(pairs, "speed")
	}
	return nil
}

func ParseSpeed(v string) (int, error) {
	speed, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "speed %q", v)
	}
	if speed < MinSpeed || speed > MaxSpeed {
		return 0, errors.Errorf("speed %d out of range %d..%d", speed, MinSpeed, MaxSpeed)
	}
	return speed, nil
}
