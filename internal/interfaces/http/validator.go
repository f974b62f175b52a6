package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinica-api/internal/application/dto"
)

// validate instancia compartida (el validador cachea la metadata de structs).
var validate = validator.New(validator.WithRequiredStructEnabled())

// parseAndValidate decodifica el body JSON y aplica las etiquetas validate
// del DTO. Devuelve false si ya escribió la respuesta de error.
func parseAndValidate(c *fiber.Ctx, out any) bool {
	if err := c.BodyParser(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return false
	}
	if err := validate.Struct(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
		return false
	}
	return true
}

func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "datos inválidos"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return "campo requerido: " + fe.Field()
	case "email":
		return "email inválido"
	case "min":
		return "valor por debajo del mínimo: " + fe.Field()
	case "gt", "gte":
		return "cantidad inválida: " + fe.Field()
	case "oneof":
		return "valor no permitido: " + fe.Field()
	case "uuid4":
		return "identificador inválido: " + fe.Field()
	}
	return "datos inválidos: " + fe.Field()
}
