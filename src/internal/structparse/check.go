package structparse

import (
	"strings"

	"github.com/m3tools/m3cd/src/internal/coalesced"
)

// Issue is a value of a config asset that starts like a struct but does not
// parse as one.
type Issue struct {
	Section  string `json:"section"`
	Property string `json:"property"`
	Value    string `json:"value"`
	Err      error  `json:"-"`
}

func (i Issue) Error() string {
	return "[" + i.Section + "] " + i.Property + ": " + i.Err.Error()
}

// CheckAsset reports every value of asset that begins with '(' but whose
// delimiters do not balance. Values are not required to be key=value
// structs, so plain lists like "(1,2,3)" pass.
func CheckAsset(asset *coalesced.ConfigAsset) []Issue {
	var issues []Issue
	for _, section := range asset.Sections() {
		for _, property := range section.Properties() {
			for _, v := range property.Values {
				value := strings.TrimSpace(v.Value)
				if !strings.HasPrefix(value, "(") {
					continue
				}
				if _, err := extractBody(value, '(', ')'); err != nil {
					issues = append(issues, Issue{
						Section:  section.Name,
						Property: property.Name,
						Value:    v.Value,
						Err:      err,
					})
				}
			}
		}
	}
	return issues
}
