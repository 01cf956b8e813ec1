package validators

import (
	"bitwise74/videogen-api/internal/model"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Message turns a binding error into something readable for API clients.
// Unknown errors fall back to a generic message
func Message(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}

		return strings.Join(msgs, "; ")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.String())
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "Malformed or invalid JSON request body"
	}

	return "Invalid request body"
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()

	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "video_duration":
		return fmt.Sprintf("%s must be one of %s", name, joinInts(model.Durations))
	case "video_style":
		return fmt.Sprintf("%s must be one of %s", name, joinStrings(model.Styles))
	case "upload_type":
		return fmt.Sprintf("%s must be one of %s", name, joinStrings(model.UploadTypes))
	default:
		return fmt.Sprintf("%s failed the %s check", name, fe.Tag())
	}
}

func joinInts(vals []int) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, fmt.Sprint(v))
	}

	return strings.Join(parts, ", ")
}

func joinStrings[S ~string](vals []S) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, fmt.Sprintf("%q", string(v)))
	}

	return strings.Join(parts, ", ")
}
