package iniformat

import (
	"fmt"

	"github.com/m3tools/m3cd/src/internal/coalesced"
)

var sigilActions = map[byte]coalesced.ParseAction{
	'+': coalesced.AddUnique,
	'.': coalesced.Add,
	'-': coalesced.Remove,
	'!': coalesced.RemoveProperty,
}

// splitSigil strips a leading action sigil from key.
func splitSigil(key string) (string, coalesced.ParseAction) {
	if key == "" {
		return key, coalesced.New
	}
	if action, ok := sigilActions[key[0]]; ok {
		return key[1:], action
	}
	return key, coalesced.New
}

// Sigil returns the key prefix that encodes action.
func Sigil(action coalesced.ParseAction) (string, error) {
	switch action {
	case coalesced.New:
		return "", nil
	case coalesced.AddUnique:
		return "+", nil
	case coalesced.Add:
		return ".", nil
	case coalesced.Remove:
		return "-", nil
	case coalesced.RemoveProperty:
		return "!", nil
	default:
		return "", fmt.Errorf("action %s has no sigil", action)
	}
}
