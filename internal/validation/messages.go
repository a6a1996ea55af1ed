package validation

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Messages holds the validation failure templates. "{0}" is replaced with the
// offending value or parameter.
type Messages struct {
	UserNameTooShort string
	InvalidUserName  string
	DuplicateName    string

	EmailTooShort  string
	InvalidEmail   string
	DuplicateEmail string

	PasswordTooShort                string
	PasswordRequireNonLetterOrDigit string
	PasswordRequireDigit            string
	PasswordRequireLower            string
	PasswordRequireUpper            string
}

var englishMessages = Messages{
	UserNameTooShort: "User name cannot be empty.",
	InvalidUserName:  "User name {0} is invalid, can only contain letters or digits.",
	DuplicateName:    "Name {0} is already taken.",

	EmailTooShort:  "Email cannot be empty.",
	InvalidEmail:   "Email '{0}' is invalid.",
	DuplicateEmail: "Email '{0}' is already taken.",

	PasswordTooShort:                "Passwords must be at least {0} characters.",
	PasswordRequireNonLetterOrDigit: "Passwords must have at least one non letter or digit character.",
	PasswordRequireDigit:            "Passwords must have at least one digit ('0'-'9').",
	PasswordRequireLower:            "Passwords must have at least one lowercase ('a'-'z').",
	PasswordRequireUpper:            "Passwords must have at least one uppercase ('A'-'Z').",
}

var czechMessages = Messages{
	UserNameTooShort: "Uživatelské jméno je prázdné.",
	InvalidUserName:  "Uživatelské jméno {0} může obsahovat pouze písmena a čísla.",
	DuplicateName:    "Uživatelské jméno {0} již existuje.",

	EmailTooShort:  "E-mail nemůže být prázdný.",
	InvalidEmail:   "E-mail {0} je neplatný.",
	DuplicateEmail: "Uživatel s e-mailem {0} již existuje.",

	PasswordTooShort:                "Zadané heslo je příliš krátké. Minimální délka je {0} znaků.",
	PasswordRequireNonLetterOrDigit: "Heslo musí obsahovat speciální znak, co není písmeno ani číslice.",
	PasswordRequireDigit:            "Heslo musí obsahovat číslici.",
	PasswordRequireLower:            "Heslo musí obsahovat malé písmeno.",
	PasswordRequireUpper:            "Heslo musí obsahovat velké písmeno.",
}

var (
	supportedLocales = []language.Tag{language.English, language.Czech}
	catalogs         = map[language.Tag]Messages{
		language.English: englishMessages,
		language.Czech:   czechMessages,
	}
	matcher = language.NewMatcher(supportedLocales)
)

// DefaultMessages returns the English templates.
func DefaultMessages() Messages {
	return englishMessages
}

// MessagesFor returns the catalog best matching the preferred tags,
// falling back to English.
func MessagesFor(tags ...language.Tag) Messages {
	_, idx, _ := matcher.Match(tags...)
	return catalogs[supportedLocales[idx]]
}

// ParseLocale parses an Accept-Language style list of locales.
func ParseLocale(locale string) ([]language.Tag, error) {
	if strings.TrimSpace(locale) == "" {
		return nil, nil
	}
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil {
		return nil, fmt.Errorf("failed to parse locale %q: %w", locale, err)
	}
	return tags, nil
}

// With returns a copy with the templates named by the override keys replaced.
func (m Messages) With(overrides map[string]string) (Messages, error) {
	out := m
	fields := out.byKey()
	for key, tmpl := range overrides {
		field, ok := fields[strings.TrimSuffix(key, "{0}")]
		if !ok {
			return Messages{}, fmt.Errorf("unknown message key %q", key)
		}
		*field = tmpl
	}
	return out, nil
}

func (m *Messages) byKey() map[string]*string {
	return map[string]*string{
		"userNameTooShort":                &m.UserNameTooShort,
		"invalidUserName":                 &m.InvalidUserName,
		"duplicateName":                   &m.DuplicateName,
		"emailTooShort":                   &m.EmailTooShort,
		"invalidEmail":                    &m.InvalidEmail,
		"duplicateEmail":                  &m.DuplicateEmail,
		"passwordTooShort":                &m.PasswordTooShort,
		"passwordRequireNonLetterOrDigit": &m.PasswordRequireNonLetterOrDigit,
		"passwordRequireDigit":            &m.PasswordRequireDigit,
		"passwordRequireLower":            &m.PasswordRequireLower,
		"passwordRequireUpper":            &m.PasswordRequireUpper,
	}
}

func format(tmpl string, arg any) string {
	return strings.ReplaceAll(tmpl, "{0}", fmt.Sprint(arg))
}
