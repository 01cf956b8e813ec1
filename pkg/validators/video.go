// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"bitwise74/videogen-api/internal/model"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var ErrNoValidator = errors.New("gin binding validator is not go-playground/validator")

var registerOnce sync.Once

// Register adds the custom tags used by the request bodies to gin's
// validator. Safe to call more than once
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return ErrNoValidator
	}

	var err error
	registerOnce.Do(func() {
		err = RegisterOn(v)
	})

	return err
}

// RegisterOn adds the custom tags to any validator instance
func RegisterOn(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"video_duration": func(fl validator.FieldLevel) bool {
			return model.ValidDuration(int(fl.Field().Int()))
		},
		"video_style": func(fl validator.FieldLevel) bool {
			return model.Style(fl.Field().String()).Valid()
		},
		"upload_type": func(fl validator.FieldLevel) bool {
			return model.UploadType(fl.Field().String()).Valid()
		},
	}

	// Report JSON/form names in errors instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name, _, _ := strings.Cut(f.Tag.Get(key), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}

		return f.Name
	})

	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}

	return nil
}
