package validate

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/platform/apierr"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags
	notBlankTag        = "notblank"
	mobileTag          = "mobile"
	targetRequiredTag  = "chapter_or_topic"
	targetExclusiveTag = "one_of_chapter_topic"

	// labels overrides the name derived from a JSON key in messages.
	labels = map[string]string{
		"level_id":      "Education level",
		"mobile_number": "Mobile number",
		"otp":           "OTP",
	}
)

const (
	minMobileDigits = 7
	maxMobileDigits = 15
)

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Report JSON keys rather than Go field names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = Validate.RegisterValidation(mobileTag, mobileValidation)
	Validate.RegisterStructValidation(progressStructValidation, domain.UserProgress{})

	registerTranslations("required", "email", "min", notBlankTag, mobileTag, targetRequiredTag, targetExclusiveTag)
}

// registerTranslations replaces the default English messages for tags with
// the wording the admin clients show next to a field.
func registerTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = Validate.RegisterTranslation(tag, Translator, registerFn, translate)
	}
}

func translate(_ ut.Translator, fe validator.FieldError) string {
	label := Label(fe.Field())
	switch fe.Tag() {
	case "required", notBlankTag:
		return label + " is required"
	case "email":
		return label + " is not valid"
	case "min":
		return label + " must be at least " + fe.Param() + " characters"
	case mobileTag:
		return label + " must have 7 to 15 digits"
	case targetRequiredTag:
		return "Either chapter_id or topic_id is required"
	case targetExclusiveTag:
		return "Set only one of chapter_id or topic_id"
	default:
		return label + " is not valid"
	}
}

// Label turns a JSON key into the name used in messages: level_id becomes
// "Education level", class_id becomes "Class".
func Label(key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	l := strings.ReplaceAll(strings.TrimSuffix(key, "_id"), "_", " ")
	if l == "" {
		return "Value"
	}
	return strings.ToUpper(l[:1]) + l[1:]
}

// Struct validates v and reports failures as a 422 keyed by JSON field.
func Struct(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return apierr.Validation(Fields(verrs))
}

// Fields keeps the first message per field.
func Fields(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, ok := out[fe.Field()]; !ok {
			out[fe.Field()] = fe.Translate(Translator)
		}
	}
	return out
}

// Blank reports whether s is empty once whitespace is trimmed.
func Blank(s string) bool {
	return Validate.Var(s, notBlankTag) != nil
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// mobileValidation accepts an optional leading + followed by 7 to 15 digits.
func mobileValidation(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	digits := strings.TrimPrefix(str, "+")
	if len(digits) < minMobileDigits || len(digits) > maxMobileDigits {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// progressStructValidation requires exactly one of chapter or topic.
func progressStructValidation(sl validator.StructLevel) {
	p, ok := sl.Current().Interface().(domain.UserProgress)
	if !ok {
		return
	}
	chapter := strings.TrimSpace(p.ChapterID) != ""
	topic := strings.TrimSpace(p.TopicID) != ""
	switch {
	case !chapter && !topic:
		sl.ReportError(p.ChapterID, "chapter_id", "ChapterID", targetRequiredTag, "")
	case chapter && topic:
		sl.ReportError(p.TopicID, "topic_id", "TopicID", targetExclusiveTag, "")
	}
}
