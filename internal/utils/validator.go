package utils

import (
	"os"
	"reflect"
	"regexp"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/truemail-rb/truemail-go"
)

type Validator struct {
	Validate    *validator.Validate
	VerifyEmail func(email string) bool

	policy *bluemonday.Policy
}

var (
	instance      *Validator
	once          sync.Once
	configuration *truemail.Configuration

	usernamePattern = regexp.MustCompile(`^[a-z0-9.\-_]+$`)
)

func GetValidator() *Validator {
	once.Do(func() {
		configuration, _ = truemail.NewConfiguration(truemail.ConfigurationAttr{
			VerifierEmail:         "team@mail.account-server.dev",
			ValidationTypeDefault: "mx",
			SmtpFailFast:          true,
		})

		instance = &Validator{
			Validate:    validator.New(validator.WithRequiredStructEnabled()),
			VerifyEmail: verifyEmail,
			policy:      bluemonday.StrictPolicy(),
		}
	})

	return instance
}

func verifyEmail(email string) bool {
	return truemail.IsValid(email, configuration)
}

// IsValidEmail checks the syntactic validity of an address using the
// validator's built-in email rule.
func (v *Validator) IsValidEmail(email string) bool {
	return v.Validate.Var(email, "required,email") == nil
}

// DeepVerifyEmail runs the truemail MX check on an address when
// EMAIL_VERIFICATION=mx is set. Without the gate every syntactically
// valid address passes, which keeps tests and offline development
// independent of DNS.
func (v *Validator) DeepVerifyEmail(email string) bool {
	if os.Getenv("EMAIL_VERIFICATION") != "mx" {
		return true
	}
	return v.VerifyEmail(email)
}

// IsValidUsername checks a normalized username against the allowed
// charset: a-z, 0-9, ., -, and _.
func (v *Validator) IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// Sanitize strips any markup from a single string.
func (v *Validator) Sanitize(value string) string {
	return v.policy.Sanitize(value)
}

// SanitizeStruct strips any markup from the string fields of the bound
// request struct. obj must be a pointer to a struct.
func (v *Validator) SanitizeStruct(obj interface{}) {
	value := reflect.ValueOf(obj)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return
	}

	value = value.Elem()
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if field.Kind() == reflect.String && field.CanSet() {
			field.SetString(v.policy.Sanitize(field.String()))
		}
	}
}

// HasRequiredCharClasses reports whether the value covers all four
// character classes of the default password policy: an upper case
// letter, a lower case letter, a number, and a special character.
// Non-ASCII values are rejected outright.
func HasRequiredCharClasses(value string) bool {
	var upperLetter, lowerLetter, number, specialChar bool

	for _, r := range value {
		if r > unicode.MaxASCII {
			return false
		}

		switch {
		case unicode.IsUpper(r):
			upperLetter = true
		case unicode.IsLower(r):
			lowerLetter = true
		case unicode.IsNumber(r):
			number = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			specialChar = true
		}
	}

	return upperLetter && lowerLetter && number && specialChar
}
