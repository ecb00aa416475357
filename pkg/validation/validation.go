package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterJSONTagNames makes gin's validator report fields by their json
// names ("firstName" rather than "FirstName").
func RegisterJSONTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// Message turns a binding error into one caller-facing sentence. Field
// errors report the first failing field; anything else (malformed JSON,
// wrong types) yields fallback.
func Message(err error, fallback string) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fallback
	}

	e := validationErrors[0]
	if fieldMessages := CustomMessage(e.Field()); fieldMessages != nil {
		if msg, exists := fieldMessages[e.Tag()]; exists {
			return msg
		}
	}
	return DefaultMessage(e.Field(), e.Tag(), e.Param())
}
