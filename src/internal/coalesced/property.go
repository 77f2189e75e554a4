package coalesced

// ConfigValue is one value of a property together with the action that produced it.
type ConfigValue struct {
	Value  string      `json:"value"`
	Action ParseAction `json:"action"`
}

// NewValue returns a ConfigValue.
func NewValue(value string, action ParseAction) ConfigValue {
	return ConfigValue{Value: value, Action: action}
}

// ConfigProperty holds every value given for one name within a section, in insertion order.
type ConfigProperty struct {
	Name   string        `json:"name"`
	Values []ConfigValue `json:"values"`
	// Comments are the comment and blank lines found just before the
	// property's first value.
	Comments []string `json:"comments,omitempty"`
}

// NewConfigProperty returns a property holding values.
func NewConfigProperty(name string, values ...ConfigValue) *ConfigProperty {
	return &ConfigProperty{Name: name, Values: values}
}

// Add appends v.
func (p *ConfigProperty) Add(v ConfigValue) {
	p.Values = append(p.Values, v)
}

// Clear drops every value.
func (p *ConfigProperty) Clear() {
	p.Values = p.Values[:0]
}

// Contains reports whether any value equals value exactly.
func (p *ConfigProperty) Contains(value string) bool {
	for i := len(p.Values) - 1; i >= 0; i-- {
		if p.Values[i].Value == value {
			return true
		}
	}
	return false
}

// Strings returns the value payloads in order.
func (p *ConfigProperty) Strings() []string {
	out := make([]string, len(p.Values))
	for i, v := range p.Values {
		out[i] = v.Value
	}
	return out
}

// removeMatching deletes every value equal to value, scanning from the end,
// and returns how many were removed.
func (p *ConfigProperty) removeMatching(value string) int {
	removed := 0
	for i := len(p.Values) - 1; i >= 0; i-- {
		if p.Values[i].Value == value {
			p.Values = append(p.Values[:i], p.Values[i+1:]...)
			removed++
		}
	}
	return removed
}

func (p *ConfigProperty) clone() *ConfigProperty {
	values := make([]ConfigValue, len(p.Values))
	copy(values, p.Values)
	return &ConfigProperty{Name: p.Name, Values: values, Comments: cloneLines(p.Comments)}
}

func cloneLines(lines []string) []string {
	if lines == nil {
		return nil
	}
	return append([]string(nil), lines...)
}
