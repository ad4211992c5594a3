package validator

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"academic-hub/internal/interface/api/rest/dto/auth"
	"academic-hub/internal/interface/api/rest/dto/filerecord"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe

	maxNameLen     = 255
	maxKeyLen      = 64
	maxNotesLen    = 4000
	maxTags        = 20
	maxTagLen      = 32
	maxQueryLength = 128
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	return validateCredentials(r.Email, r.Password)
}

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	return validateCredentials(r.Email, r.Password)
}

func validateCredentials(email, password string) map[string]string {
	errs := make(map[string]string)

	email = strings.ToLower(strings.TrimSpace(email))

	// email (required + format)
	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}

	// password is not trimmed, only checked for blank
	if strings.TrimSpace(password) == "" {
		errs["password"] = "password is required"
	} else if l := utf8.RuneCountInString(password); l < minPasswordLen || l > maxPasswordLen {
		errs["password"] = "password length must be 8-72 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateEdit(r filerecord.EditRequest) map[string]string {
	errs := make(map[string]string)

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			errs["name"] = "name must not be blank"
		} else if utf8.RuneCountInString(name) > maxNameLen {
			errs["name"] = "name is too long"
		}
	}
	if r.SubjectID != nil {
		if msg := checkKey(*r.SubjectID); msg != "" {
			errs["subject_id"] = msg
		}
	}
	if r.Category != nil {
		if msg := checkKey(*r.Category); msg != "" {
			errs["category"] = msg
		}
	}
	if r.Notes != nil && utf8.RuneCountInString(*r.Notes) > maxNotesLen {
		errs["notes"] = "notes are too long"
	}
	if r.Tags != nil {
		if msg := checkTags(*r.Tags); msg != "" {
			errs["tags"] = msg
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateUpload checks the form fields sent along with the file.
func ValidateUpload(subjectID, category string, tags []string) map[string]string {
	errs := make(map[string]string)

	if msg := checkKey(subjectID); msg != "" {
		errs["subject_id"] = msg
	}
	if msg := checkKey(category); msg != "" {
		errs["category"] = msg
	}
	if msg := checkTags(tags); msg != "" {
		errs["tags"] = msg
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ParseTags splits a comma separated form value.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func ParseForce(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	force, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New("force must be a boolean")
	}
	return force, nil
}

func ValidateQuery(q string) error {
	if utf8.RuneCountInString(q) > maxQueryLength {
		return errors.New("q is too long")
	}
	return nil
}

func checkKey(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return "is required"
	case len(s) > maxKeyLen:
		return "is too long"
	}
	return ""
}

func checkTags(tags []string) string {
	if len(tags) > maxTags {
		return "too many tags"
	}
	for _, t := range tags {
		if utf8.RuneCountInString(strings.TrimSpace(t)) > maxTagLen {
			return "tag is too long"
		}
	}
	return ""
}
