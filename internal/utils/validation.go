package utils

import (
	"errors"
	"regexp"
	"strings"
)

var (
	employeeIDRe = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)
	fullNameRe   = regexp.MustCompile(`^[A-Za-z\s]+$`)
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe      = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	vehicleRe    = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{2}[0-9]{4}$`)
	hasLetterRe  = regexp.MustCompile(`[A-Za-z]`)
	hasDigitRe   = regexp.MustCompile(`[0-9]`)
)

var vehicleStateCodes = map[string]struct{}{
	"MH": {}, "DL": {}, "UP": {}, "KA": {}, "TN": {}, "AP": {}, "GJ": {}, "RJ": {}, "MP": {}, "WB": {},
	"OR": {}, "PB": {}, "HR": {}, "BR": {}, "AS": {}, "JK": {}, "HP": {}, "UT": {}, "CH": {}, "NL": {},
	"TR": {}, "GA": {}, "MN": {}, "ML": {}, "MZ": {}, "SK": {}, "AN": {}, "LD": {}, "DN": {}, "PY": {},
}

// NormalizeEmployeeID trims, uppercases and validates an employee id
// (3 uppercase letters followed by 3 digits, e.g. ABC123).
func NormalizeEmployeeID(id string) (string, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return "", errors.New("employee ID is required")
	}
	if !employeeIDRe.MatchString(id) {
		return "", errors.New("employee ID must be 3 uppercase letters followed by 3 digits (e.g., ABC123)")
	}
	return id, nil
}

// ValidatePassword enforces the password policy: 6-50 characters with at
// least one letter and one digit.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters long")
	}
	if len(password) > 50 {
		return errors.New("password must be less than 50 characters long")
	}
	if !hasLetterRe.MatchString(password) || !hasDigitRe.MatchString(password) {
		return errors.New("password must contain at least one letter and one number")
	}
	return nil
}

// NormalizeFullName trims and validates a display name (2-50 letters and
// spaces).
func NormalizeFullName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return "", errors.New("name must be at least 2 characters")
	}
	if len(name) > 50 {
		return "", errors.New("name must be less than 50 characters")
	}
	if !fullNameRe.MatchString(name) {
		return "", errors.New("name must contain only letters and spaces")
	}
	return name, nil
}

// NormalizeEmail trims, lowercases and validates an email address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errors.New("email is required")
	}
	if !emailRe.MatchString(email) {
		return "", errors.New("invalid email address")
	}
	return email, nil
}

// NormalizePhone trims and validates a 10-digit phone number starting with
// 6, 7, 8 or 9.
func NormalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", errors.New("phone number is required")
	}
	if !phoneRe.MatchString(phone) {
		return "", errors.New("phone must be a valid 10-digit number starting with 6, 7, 8, or 9")
	}
	return phone, nil
}

// NormalizeVehicleNumber uppercases a number plate, strips spaces and
// validates the Indian format XX##XX#### (e.g. KA01AB1234), including the
// state-code prefix.
func NormalizeVehicleNumber(plate string) (string, error) {
	plate = strings.ToUpper(strings.Join(strings.Fields(plate), ""))
	if plate == "" {
		return "", errors.New("vehicle number is required")
	}
	if len(plate) != 10 {
		return "", errors.New("vehicle number must be exactly 10 characters (e.g., MH12AB1234)")
	}
	if !vehicleRe.MatchString(plate) {
		return "", errors.New("vehicle number must use the format XX##XX#### (e.g., MH12AB1234)")
	}
	if _, ok := vehicleStateCodes[plate[:2]]; !ok {
		return "", errors.New("vehicle number must start with a valid state code (e.g., MH, DL, UP, KA)")
	}
	return plate, nil
}
