package middleware

import (
	"fmt"
	"strings"
)

// Input validation and sanitization utilities

// ValidateGender checks the gender value against the allowed set
func ValidateGender(gender string) error {
	if gender == "" {
		return nil
	}
	allowed := map[string]bool{
		"male":   true,
		"female": true,
		"other":  true,
	}
	if !allowed[strings.ToLower(gender)] {
		return fmt.Errorf("invalid gender: %s (allowed: Male, Female, Other)", gender)
	}
	return nil
}

// ValidateFilename rejects keys that could escape the bucket namespace
func ValidateFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if strings.Contains(filename, "..") {
		return fmt.Errorf("filename must not contain '..'")
	}
	if strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("filename must not contain path separators")
	}
	return nil
}

// ValidateReportUpload checks the required upload form fields
func ValidateReportUpload(patientID int64, doctorName, title string) error {
	if patientID <= 0 {
		return fmt.Errorf("patient_id is required")
	}
	if strings.TrimSpace(doctorName) == "" {
		return fmt.Errorf("doctor_name is required")
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}
