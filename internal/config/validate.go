package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// tagMessages replace the stock English text for tags whose default
// message does not say what the command expects.
var tagMessages = map[string]string{
	"dir":        "must be an existing directory",
	"contains":   `must be a "Name: value" header line`,
	"startswith": "must be an option name such as CURLOPT_MAXREDIRS",
}

type checker struct {
	validate *validator.Validate
	trans    ut.Translator
}

var newChecker = sync.OnceValues(func() (*checker, error) {
	v := validator.New()

	trans, ok := ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		return nil, errors.New("english translator unavailable")
	}
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("registering translations: %w", err)
	}

	// Report fields by their YAML key.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &checker{validate: v, trans: trans}, nil
})

// Validate checks cfg against its declared tags. Invalid settings are
// reported together as [FieldErrors].
func Validate(cfg Config) error {
	c, err := newChecker()
	if err != nil {
		return fmt.Errorf("building validator: %w", err)
	}

	err = c.validate.Struct(cfg)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = fe.Translate(c.trans)
		}
		fields = append(fields, FieldError{Field: fieldPath(fe), Err: msg})
	}

	return fields
}

// fieldPath drops the struct name from the namespace, so a header line
// reads "headers[1]" and a named option key "named_options[FOO]".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

// FieldError is a single invalid setting.
type FieldError struct {
	Field string
	Err   string
}

// FieldErrors lists every invalid setting of a Config.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + ": " + f.Err
	}
	return strings.Join(parts, "; ")
}
