package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	"Title":           "Title",
	"Content":         "Content",
	"RecruitType":     "Recruit type",
	"ProgressType":    "Progress type",
	"Positions":       "Positions",
	"TechStacks":      "Tech stacks",
	"MemberCount":     "Member count",
	"Duration":        "Duration",
	"ContactMethod":   "Contact method",
	"ContactLink":     "Contact link",
	"Name":            "Name",
	"Bio":             "Bio",
	"ProfileImageURL": "Profile image URL",
	"Portfolio":       "Portfolio URL",
	"Phone":           "Phone number",
	"Email":           "Email",
	"CurrentPassword": "Current password",
	"NewPassword":     "New password",
	"Company":         "Company",
	"School":          "School",
	"StartDate":       "Start date",
	"EndDate":         "End date",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: at most %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Fields(param), ", "))
	case "email":
		return fmt.Sprintf("%s: invalid email format", label)
	case "url":
		return fmt.Sprintf("%s: invalid URL format", label)
	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number (7-15 digits, optional +)", label)
	default:
		return fmt.Sprintf("%s: validation failed (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
