package core

import (
	"reflect"
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	lkMobileTag   = "lkmobile"
	lkMobileText  = "Invalid mobile number format. Use 07x xxxxxxx"
	// prefixes 070, 071, 075, 076, 077, 078; the leading zero is optional
	lkMobileRegex = regexp.MustCompile(`^0?7[015678][0-9]{7}$`)

	nicTag   = "nic"
	nicText  = "Invalid NIC number format"
	// old format: 9 digits + V/X; new format: 12 digits
	oldNicRegex = regexp.MustCompile(`^[0-9]{9}[vVxX]$`)
	newNicRegex = regexp.MustCompile(`^[0-9]{12}$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(lkMobileTag, lkMobileValidation)
	RegisterCustomTranslation(validate, translator, lkMobileTag, lkMobileText)

	_ = validate.RegisterValidation(nicTag, nicValidation)
	RegisterCustomTranslation(validate, translator, nicTag, nicText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// lkMobileValidation matches local mobile numbers, spaces stripped beforehand.
func lkMobileValidation(fl validator.FieldLevel) bool {
	return lkMobileRegex.MatchString(StripSpaces(fl.Field().String()))
}

// nicValidation accepts both old and new national ID formats.
func nicValidation(fl validator.FieldLevel) bool {
	nic := fl.Field().String()
	return oldNicRegex.MatchString(nic) || newNicRegex.MatchString(nic)
}
