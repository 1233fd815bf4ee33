package framework

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConflict is returned when more than one framework flag is set.
	ErrConflict = errors.New("only one of --axum, --rocket or --tide can be set")
	// ErrUnknown is returned when a label does not name a supported framework.
	ErrUnknown = errors.New("unknown framework")
)

// Framework is the web framework a project is generated for.
// The zero value None means no framework was chosen.
type Framework int

const (
	None Framework = iota
	Axum
	Rocket
	Tide
)

var labels = [...]string{
	None:   "",
	Axum:   "axum",
	Rocket: "rocket",
	Tide:   "tide",
}

// All returns the supported frameworks in menu order.
func All() []Framework {
	return []Framework{Axum, Rocket, Tide}
}

// Labels returns the labels of All, in the same order.
func Labels() []string {
	all := All()
	out := make([]string, len(all))
	for i, f := range all {
		out[i] = f.String()
	}
	return out
}

// FromFlags collapses the three mutually exclusive framework flags into a
// single choice.
func FromFlags(axum, rocket, tide bool) (Framework, error) {
	choice, set := None, 0
	if axum {
		choice, set = Axum, set+1
	}
	if rocket {
		choice, set = Rocket, set+1
	}
	if tide {
		choice, set = Tide, set+1
	}

	if set > 1 {
		return None, ErrConflict
	}

	return choice, nil
}

// Parse returns the framework named by label, case-insensitively.
func Parse(label string) (Framework, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, f := range All() {
		if f.String() == label {
			return f, nil
		}
	}

	return None, fmt.Errorf("%w: %q", ErrUnknown, label)
}

// IsSet reports whether f names an actual framework.
func (f Framework) IsSet() bool {
	return f > None && int(f) < len(labels)
}

func (f Framework) String() string {
	if f < None || int(f) >= len(labels) {
		return fmt.Sprintf("framework(%d)", int(f))
	}
	return labels[f]
}

// MarshalText implements encoding.TextMarshaler.
func (f Framework) MarshalText() ([]byte, error) {
	if !f.IsSet() {
		return nil, fmt.Errorf("%w: %d", ErrUnknown, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Framework) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*f = parsed
	return nil
}
