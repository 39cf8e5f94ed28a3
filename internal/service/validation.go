package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var tagMessages = map[string]string{
	"required": "Este campo es obligatorio",
	"email":    "Introduce un correo electrónico válido",
	"min":      "Es demasiado corto",
	"max":      "Es demasiado largo",
	"datetime": "Usa el formato AAAA-MM-DD",
	"e164":     "Introduce un teléfono en formato internacional",
	"url":      "Introduce una URL válida",
}

// validateStruct turns validator failures into a ValidationError keyed by
// the JSON field names.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "Valor no válido"
		}
		fields[fe.Field()] = msg
	}
	return &appErrors.ValidationError{Fields: fields}
}
