package service

import (
	"fmt"
	"time"

	"github.com/Shadowina/ecole-portal-api/internal/models"
)

var registrationPrefixes = map[models.UserType]string{
	models.UserTypeStudent:         "STU",
	models.UserTypeProfessor:       "PRO",
	models.UserTypeDepartmentAdmin: "ADM",
}

// RegistrationPrefix returns the registration number prefix for a user type.
// Unknown types fall back to the generic USR prefix.
func RegistrationPrefix(userType models.UserType) string {
	if prefix, ok := registrationPrefixes[userType]; ok {
		return prefix
	}
	return "USR"
}

// RegistrationDay renders the day segment embedded in registration numbers.
func RegistrationDay(at time.Time) string {
	return at.Format("20060102")
}

// FormatRegistrationNumber renders a portal registration number of the form
// PREFIX-YYYYMMDD-HHMMSS-SEQ, where SEQ is a zero padded per-day sequence.
func FormatRegistrationNumber(userType models.UserType, at time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%s-%03d", RegistrationPrefix(userType), at.Format("20060102"), at.Format("150405"), seq)
}
