package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"

	"github.com/m3tools/m3cd/src/internal/coalesced"
	"github.com/m3tools/m3cd/src/internal/storage"
)

var (
	deltaPrefixRegexp = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "game":
		return "must be one of: ME1, ME2, ME3, LE1, LE2, LE3"
	case "delta_prefix":
		return "must consist only of letters, numbers, dots, dashes and underscores"
	case "delta_pattern":
		return "must be a valid glob pattern"
	case "backup_template":
		if err := storage.ValidateBackupTemplate(fmt.Sprint(e.Value())); err != nil {
			return err.Error()
		}
		return "must be a valid backup name template"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	ItemName  string // For deltas: the name of the delta source
	FieldPath string // Dot-notation field path (e.g., "general.game", "delta.0.prefix")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		if err.ItemName != "" {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s: %s\n", i+1, err.ItemName, err.FieldPath, err.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
		}
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("game", validateGame); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("delta_prefix", validateDeltaPrefix); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("delta_pattern", validateDeltaPattern); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("backup_template", validateBackupTemplate); err != nil {
		panic(err)
	}

	// Report fields by their TOML names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Only games with loose ini config can be merged by a job.
func validateGame(fl validator.FieldLevel) bool {
	game, err := coalesced.ParseGame(fl.Field().String())
	return err == nil && game.HasLooseConfig()
}

func validateDeltaPrefix(fl validator.FieldLevel) bool {
	return deltaPrefixRegexp.MatchString(fl.Field().String())
}

func validateDeltaPattern(fl validator.FieldLevel) bool {
	return doublestar.ValidatePattern(fl.Field().String())
}

func validateBackupTemplate(fl validator.FieldLevel) bool {
	return storage.ValidateBackupTemplate(fl.Field().String()) == nil
}
