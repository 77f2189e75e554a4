package coalesced

import (
	"fmt"
	"strings"
)

// ParseAction is the mutation attached to one config value. The numeric values
// match the type numbers stored in coalesced files.
type ParseAction int

const (
	// New replaces every existing value of the property.
	New ParseAction = 0
	// RemoveProperty deletes the property and all of its values.
	RemoveProperty ParseAction = 1
	// Add appends the value unconditionally.
	Add ParseAction = 2
	// AddUnique appends the value unless the property already holds it.
	AddUnique ParseAction = 3
	// Remove deletes every value equal to this one.
	Remove ParseAction = 4
)

var actionNames = map[ParseAction]string{
	New:            "New",
	RemoveProperty: "RemoveProperty",
	Add:            "Add",
	AddUnique:      "AddUnique",
	Remove:         "Remove",
}

func (a ParseAction) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ParseAction(%d)", int(a))
}

// IsKnown reports whether a is one of the defined actions.
func (a ParseAction) IsKnown() bool {
	_, ok := actionNames[a]
	return ok
}

// ParseActionFromString resolves an action by name, ignoring case.
func ParseActionFromString(name string) (ParseAction, error) {
	for action, n := range actionNames {
		if strings.EqualFold(n, name) {
			return action, nil
		}
	}
	return 0, fmt.Errorf("unknown parse action: %s", name)
}

// MarshalText implements encoding.TextMarshaler.
func (a ParseAction) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *ParseAction) UnmarshalText(text []byte) error {
	action, err := ParseActionFromString(string(text))
	if err != nil {
		return err
	}
	*a = action
	return nil
}
