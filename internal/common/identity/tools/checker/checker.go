package checker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abezemskiy/immersilearn/internal/repositories/identity"
)

const (
	minPasswordLen    = 8  // минимальная длина пароля
	maxPasswordBytes  = 72 // bcrypt не учитывает байты после 72-го
	minInstitutionLen = 2  // минимальная длина названия учреждения
)

// emailPattern - общий вид адреса local@domain.tld.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Reason - причина ошибки валидации.
type Reason string

const (
	MissingField        Reason = "missing_field"
	InvalidEmail        Reason = "invalid_email"
	WeakPassword        Reason = "weak_password"
	PasswordTooLong     Reason = "password_too_long"
	InstitutionTooShort Reason = "institution_too_short"
	InvalidValue        Reason = "invalid_value"
)

// ValidationError - ошибка валидации входных данных.
type ValidationError struct {
	Reason Reason
	Field  string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case MissingField:
		return fmt.Sprintf("field %s is required", e.Field)
	case InvalidEmail:
		return "invalid email format"
	case WeakPassword:
		return fmt.Sprintf("password must be at least %d characters", minPasswordLen)
	case PasswordTooLong:
		return fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes)
	case InstitutionTooShort:
		return "institution name is too short"
	case InvalidValue:
		return fmt.Sprintf("field %s has invalid value", e.Field)
	}
	return fmt.Sprintf("field %s is not valid", e.Field)
}

// Sanitize - удаляет пробельные символы в начале и конце строки. Регистр не меняется.
func Sanitize(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail - приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(Sanitize(email))
}

// CheckEmail - функция для проверки корректности email.
func CheckEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// CheckName - имя обязательно и не может состоять только из пробельных символов.
func CheckName(name string) bool {
	return Sanitize(name) != ""
}

// CheckPassword - функция для проверки надежности пароля.
func CheckPassword(password string) bool {
	return len([]rune(password)) >= minPasswordLen
}

// ValidateRegistration - проверяет данные регистрации и возвращает их очищенную копию.
// Email в результате приведен к нижнему регистру.
func ValidateRegistration(kind identity.Kind, data identity.RegistrationData) (identity.RegistrationData, error) {
	clean := identity.RegistrationData{
		Name:     Sanitize(data.Name),
		Email:    NormalizeEmail(data.Email),
		Password: data.Password,
	}
	if kind == identity.KindProfessor {
		clean.Institution = Sanitize(data.Institution)
	}

	// проверяю наличие обязательных полей
	if !CheckName(clean.Name) {
		return identity.RegistrationData{}, &ValidationError{Reason: MissingField, Field: "name"}
	}
	if clean.Email == "" {
		return identity.RegistrationData{}, &ValidationError{Reason: MissingField, Field: "email"}
	}
	if clean.Password == "" {
		return identity.RegistrationData{}, &ValidationError{Reason: MissingField, Field: "password"}
	}
	if kind == identity.KindProfessor && clean.Institution == "" {
		return identity.RegistrationData{}, &ValidationError{Reason: MissingField, Field: "institution"}
	}

	if !CheckEmail(clean.Email) {
		return identity.RegistrationData{}, &ValidationError{Reason: InvalidEmail, Field: "email"}
	}
	if !CheckPassword(clean.Password) {
		return identity.RegistrationData{}, &ValidationError{Reason: WeakPassword, Field: "password"}
	}
	if len(clean.Password) > maxPasswordBytes {
		return identity.RegistrationData{}, &ValidationError{Reason: PasswordTooLong, Field: "password"}
	}
	if kind == identity.KindProfessor && len([]rune(clean.Institution)) < minInstitutionLen {
		return identity.RegistrationData{}, &ValidationError{Reason: InstitutionTooShort, Field: "institution"}
	}
	return clean, nil
}

// ValidateLogin - проверяет наличие email и пароля. Email в результате приведен к нижнему регистру.
func ValidateLogin(data identity.LoginData) (identity.LoginData, error) {
	clean := identity.LoginData{
		Email:    NormalizeEmail(data.Email),
		Password: data.Password,
	}
	if clean.Email == "" {
		return identity.LoginData{}, &ValidationError{Reason: MissingField, Field: "email"}
	}
	if clean.Password == "" {
		return identity.LoginData{}, &ValidationError{Reason: MissingField, Field: "password"}
	}
	return clean, nil
}
