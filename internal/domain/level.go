package domain

import (
	"encoding/json"
	"strings"
)

// Level is a skill rank within a category. The zero value is not a valid level.
type Level int

const (
	LevelBeginner Level = iota + 1
	LevelAmateur
	LevelProfessional
)

var levelNames = map[Level]string{
	LevelBeginner:     "BEGINNER",
	LevelAmateur:      "AMATEUR",
	LevelProfessional: "PROFESSIONAL",
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BEGINNER":
		return LevelBeginner, nil
	case "AMATEUR":
		return LevelAmateur, nil
	case "PROFESSIONAL":
		return LevelProfessional, nil
	}
	return 0, ErrInvalidLevel
}

func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return "UNKNOWN"
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// AtLeast reports whether l ranks at or above other.
func (l Level) AtLeast(other Level) bool {
	return l >= other
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = v
	return nil
}
