package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Quangqueee/hanoi-residences/internal/models"
)

// Length limits.
const (
	MinTitleLength       = 3
	MaxTitleLength       = 200
	MinDetailsLength     = 10
	MaxDetailsLength     = 5000
	MinDisplayNameLength = 2
	MaxDisplayNameLength = 100
	MaxInterestsLength   = 1000
	MaxSourceCodeLength  = 30
	MaxAddressLength     = 300
	MaxPrice             = 1000.0 // millions of VND per month
	MaxArea              = 2000.0 // m²
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	phoneRegex       = regexp.MustCompile(`^(\+84|0)\d{9,10}$`)
	sourceCodeRegex  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// FieldErrors maps a form field name to its validation message, so the
// editor can surface errors next to the offending inputs.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e[f]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateListing checks a listing before it is written. Returns
// FieldErrors covering every violated field, or nil.
func ValidateListing(l *models.Listing) error {
	errs := FieldErrors{}

	if err := ValidateLength("title", l.Title, MinTitleLength, MaxTitleLength); err != nil {
		errs["title"] = err.Error()
	}
	if err := ValidateLength("details", l.Details, MinDetailsLength, MaxDetailsLength); err != nil {
		errs["details"] = err.Error()
	}

	if _, ok := models.ValidRoomTypes[l.RoomType]; !ok {
		errs["room_type"] = "room type must be one of: studio, one-bedroom, two-bedroom, other"
	}
	if _, ok := models.ValidDistricts[l.District]; !ok {
		errs["district"] = "district must be a known Hanoi district"
	}

	if l.Area <= 0 {
		errs["area"] = "area must be positive"
	} else if l.Area > MaxArea {
		errs["area"] = fmt.Sprintf("area must not exceed %.0f m²", MaxArea)
	}

	if l.Price <= 0 {
		errs["price"] = "price must be positive"
	} else if l.Price > MaxPrice {
		errs["price"] = fmt.Sprintf("price must not exceed %.0f million", MaxPrice)
	}

	code := strings.TrimSpace(l.SourceCode)
	if code == "" {
		errs["source_code"] = "source code is required"
	} else if len(code) > MaxSourceCodeLength || !sourceCodeRegex.MatchString(code) {
		errs["source_code"] = "source code may only contain letters, digits, - and _"
	}

	if strings.TrimSpace(l.Address) == "" {
		errs["address"] = "address is required"
	} else if utf8.RuneCountInString(l.Address) > MaxAddressLength {
		errs["address"] = fmt.Sprintf("address must be at most %d characters", MaxAddressLength)
	}

	if err := ValidatePhone(l.Phone); err != nil {
		errs["landlord_phone"] = err.Error()
	}

	if len(l.Images) == 0 {
		errs["images"] = "at least one image is required"
	} else {
		for _, img := range l.Images {
			if strings.TrimSpace(img) == "" {
				errs["images"] = "image URLs must not be empty"
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateLength checks the rune length of a string field.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateEmail checks an email address format.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("invalid email format")
	}

	localPart, domainPart := parts[0], parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("email local part must be 1 to 64 characters")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("email domain must be 1 to 255 characters")
	}
	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("email local part contains invalid characters")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("email domain has an invalid format")
	}

	return nil
}

// ValidatePhone checks a Vietnamese phone number (0xxxxxxxxx or +84...).
func ValidatePhone(phone string) error {
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if phone == "" {
		return fmt.Errorf("phone number is required")
	}
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("phone number must start with 0 or +84 followed by 9-10 digits")
	}
	return nil
}

// ValidateOptionalPhone is ValidatePhone for fields that may be empty.
func ValidateOptionalPhone(phone *string) error {
	if phone == nil || strings.TrimSpace(*phone) == "" {
		return nil
	}
	return ValidatePhone(*phone)
}

// ValidateDisplayName checks a profile display name.
func ValidateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("display name is required")
	}
	return ValidateLength("display name", strings.TrimSpace(name), MinDisplayNameLength, MaxDisplayNameLength)
}
