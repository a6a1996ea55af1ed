package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestMessagesFor(t *testing.T) {
	assert.Equal(t, englishMessages, MessagesFor())
	assert.Equal(t, englishMessages, MessagesFor(language.German))
	assert.Equal(t, czechMessages, MessagesFor(language.MustParse("cs-CZ")))
	assert.Equal(t, englishMessages, MessagesFor(language.MustParse("en-GB")))
}

func TestParseLocale(t *testing.T) {
	tags, err := ParseLocale("")
	require.NoError(t, err)
	assert.Nil(t, tags)

	tags, err = ParseLocale("de, cs;q=0.8")
	require.NoError(t, err)
	assert.Equal(t, czechMessages, MessagesFor(tags...))

	_, err = ParseLocale("not a locale!!")
	assert.Error(t, err)
}

func TestMessages_With(t *testing.T) {
	m, err := DefaultMessages().With(map[string]string{
		"passwordTooShort{0}": "At least {0} please.",
		"duplicateName":       "{0} exists.",
	})
	require.NoError(t, err)
	assert.Equal(t, "At least {0} please.", m.PasswordTooShort)
	assert.Equal(t, "{0} exists.", m.DuplicateName)
	assert.Equal(t, englishMessages.InvalidEmail, m.InvalidEmail)

	// the source catalog is untouched
	assert.Equal(t, "Name {0} is already taken.", DefaultMessages().DuplicateName)

	_, err = DefaultMessages().With(map[string]string{"unknown": "x"})
	assert.Error(t, err)
}

func TestPasswordValidator_CustomMessages(t *testing.T) {
	m, err := DefaultMessages().With(map[string]string{"passwordTooShort": "Min {0}."})
	require.NoError(t, err)

	v := NewPasswordValidator(m)
	v.RequiredLength = 10
	assert.Equal(t, []string{"Min 10."}, v.Validate("short").Errors)
}

func TestResult(t *testing.T) {
	assert.True(t, Success.Succeeded())
	r := Failed("a.", "b.")
	assert.False(t, r.Succeeded())
	assert.Equal(t, "a. b.", r.String())
}
