package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m3tools/m3cd/src/internal/utils"
)

// ValidateConfig validates the entire job and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	if c.General == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "general",
			Message:   "job must contain 'general' section",
		})
		return validationErrors
	}

	if err := validate.Struct(c.General); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "general", "")...)
	}

	if c.General.ConfigDir != "" {
		validationErrors = append(validationErrors, checkDirExists(c.GetAbsConfigDir(), "general.config_dir", "")...)
		if filepath.Clean(c.GetAbsBaseDir()) == filepath.Clean(c.GetAbsConfigDir()) {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: "general.base_dir",
				Message:   "must differ from config_dir",
			})
		}
	}

	validationErrors = append(validationErrors, c.validateDeltas()...)

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

func (c *Config) validateDeltas() ValidationErrors {
	var validationErrors ValidationErrors
	seenNames := make(map[string]bool)

	for i, delta := range c.Deltas {
		itemName := delta.Name
		if itemName == "" {
			itemName = fmt.Sprintf("delta[%d]", i)
		}

		if err := validate.Struct(delta); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, fmt.Sprintf("delta.%d", i), itemName)...)
		}

		key := utils.FoldKey(delta.Name)
		if delta.Name != "" && seenNames[key] {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "name",
				Message:   fmt.Sprintf("duplicate delta name: %s", delta.Name),
			})
		}
		seenNames[key] = true

		if delta.Prefix == "" && delta.Pattern == "" {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "prefix",
				Message:   "must specify one of: prefix or pattern",
			})
		}

		if delta.Prefix != "" && delta.Pattern != "" {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "pattern",
				Message:   "can only specify one of: prefix or pattern",
			})
		}

		// Disabled deltas may point at mods that are not installed
		if delta.Dir != "" && delta.IsEnabled() {
			validationErrors = append(validationErrors, checkDirExists(c.GetAbsDeltaDir(delta), "dir", itemName)...)
		}
	}

	return validationErrors
}

func checkDirExists(path, fieldPath, itemName string) ValidationErrors {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return ValidationErrors{{
			ItemName:  itemName,
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("directory does not exist: %s", path),
		}}
	}
	if err == nil && !info.IsDir() {
		return ValidationErrors{{
			ItemName:  itemName,
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("not a directory: %s", path),
		}}
	}
	return nil
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error, fieldPrefix string, itemName string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			// The namespace uses TOML names because of RegisterTagNameFunc.
			// Its first segment is the Go type of the validated struct.
			fieldName := e.Namespace()
			if i := strings.Index(fieldName, "."); i >= 0 {
				fieldName = fieldName[i+1:]
			}

			fieldPath := fieldPrefix
			if fieldName != "" {
				if fieldPrefix != "" {
					fieldPath = fieldPrefix + "." + fieldName
				} else {
					fieldPath = fieldName
				}
			}

			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
