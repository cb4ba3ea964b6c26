package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	std  *validator.Validate
)

// Validator returns the shared struct validator. Besides the builtin tags it
// knows kwemail, kwphone, cnic and kwpwmax, and reports fields by their json
// name.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("kwemail", stringRule(IsValidEmail))
		_ = v.RegisterValidation("kwphone", stringRule(IsValidLocalPhone))
		_ = v.RegisterValidation("cnic", stringRule(IsValidNationalID))
		_ = v.RegisterValidation("kwpwmax", stringRule(PasswordWithinMaximumLength))
		std = v
	})
	return std
}

func stringRule(fn func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	}
}

// Struct validates s and converts failures into FieldErrors using messages,
// keyed "field.tag". Unknown combinations fall back to a generic message.
func Struct(s any, messages map[string]string) (FieldErrors, error) {
	err := Validator().Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		out.Add(fe.Field(), msg)
	}
	return out, nil
}
