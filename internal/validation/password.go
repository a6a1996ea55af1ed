package validation

import "unicode/utf8"

// PasswordValidator checks candidate passwords against the configured rules.
// Character classes are ASCII only.
type PasswordValidator struct {
	Messages                Messages
	RequiredLength          int
	RequireNonLetterOrDigit bool
	RequireDigit            bool
	RequireLowercase        bool
	RequireUppercase        bool
}

// NewPasswordValidator creates a validator with no rules enabled.
func NewPasswordValidator(messages Messages) *PasswordValidator {
	return &PasswordValidator{Messages: messages}
}

// Validate evaluates every enabled rule and reports all violations.
func (v *PasswordValidator) Validate(password string) Result {
	var errs []string

	if isBlank(password) || utf8.RuneCountInString(password) < v.RequiredLength {
		errs = append(errs, format(v.Messages.PasswordTooShort, v.RequiredLength))
	}
	if v.RequireNonLetterOrDigit && every(password, isLetterOrDigit) {
		errs = append(errs, v.Messages.PasswordRequireNonLetterOrDigit)
	}
	if v.RequireDigit && !some(password, isDigit) {
		errs = append(errs, v.Messages.PasswordRequireDigit)
	}
	if v.RequireLowercase && !some(password, isLower) {
		errs = append(errs, v.Messages.PasswordRequireLower)
	}
	if v.RequireUppercase && !some(password, isUpper) {
		errs = append(errs, v.Messages.PasswordRequireUpper)
	}

	if len(errs) == 0 {
		return Success
	}
	return Failed(errs...)
}

func every(s string, pred func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !pred(s[i]) {
			return false
		}
	}
	return true
}

func some(s string, pred func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if pred(s[i]) {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func isLetterOrDigit(c byte) bool {
	return isUpper(c) || isLower(c) || isDigit(c)
}
