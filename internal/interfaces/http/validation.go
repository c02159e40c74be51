package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gstbooks-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores usan el nombre JSON (o query) del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// parseBody parsea el JSON del cuerpo y valida los tags. Devuelve nil si todo está bien.
func parseBody(c *fiber.Ctx, out any) *dto.ErrorResponse {
	if err := c.BodyParser(out); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	return validateStruct(out)
}

// parseQuery igual que parseBody pero desde la query string.
func parseQuery(c *fiber.Ctx, out any) *dto.ErrorResponse {
	if err := c.QueryParser(out); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"}
	}
	return validateStruct(out)
}

func validateStruct(obj any) *dto.ErrorResponse {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return &dto.ErrorResponse{Code: "VALIDATION", Message: strings.Join(msgs, "; ")}
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", field)
	case "min":
		return fmt.Sprintf("%s debe ser al menos %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s debe ser como máximo %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s debe tener exactamente %s caracteres", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s debe ser un UUID válido", field)
	case "email":
		return fmt.Sprintf("%s debe ser un email válido", field)
	case "numeric":
		return fmt.Sprintf("%s debe ser numérico", field)
	case "alphanum":
		return fmt.Sprintf("%s solo admite letras y números", field)
	case "datetime":
		return fmt.Sprintf("%s debe tener el formato %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s es inválido", field)
	}
}
