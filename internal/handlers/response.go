package handlers

import (
	"errors"
	"fmt"

	pkgerrors "bakery/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// writeError maps err to its HTTP status and the JSON error body shared by
// every endpoint. Internal errors are logged and their text is not exposed.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	code := pkgerrors.CodeOf(err)
	meta := pkgerrors.MetadataFor(code)

	body := fiber.Map{
		"message": meta.PublicMessage,
		"code":    code,
	}
	if typed := pkgerrors.As(err); typed != nil && code != pkgerrors.CodeInternal {
		body["error"] = typed.Message()
		if meta.DetailsAllowed && typed.Details() != nil {
			body["details"] = typed.Details()
		}
	}

	if meta.HTTPStatus >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("path", c.Path()).Msg("request rejected")
	}
	return c.Status(meta.HTTPStatus).JSON(body)
}

// bind parses the request body into dst and validates it.
func bind(c *fiber.Ctx, validate *validator.Validate, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
		}
		errorMessages := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed").WithDetails(errorMessages)
	}
	return nil
}
