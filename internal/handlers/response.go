package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kaamwala/kaamwala_be/internal/account"
	"github.com/kaamwala/kaamwala_be/internal/logger"
	"github.com/kaamwala/kaamwala_be/internal/validation"
	"github.com/kaamwala/kaamwala_be/internal/wizard"
)

func ok(c *fiber.Ctx, message string, data any, redirect string) error {
	resp := fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
	if redirect != "" {
		resp["redirect"] = redirect
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func fail200(c *fiber.Ctx, message string, extra ...fiber.Map) error {
	resp := fiber.Map{
		"success": false,
		"message": message,
	}
	if len(extra) > 0 {
		for k, v := range extra[0] {
			resp[k] = v
		}
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func fail500(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func validationFail(c *fiber.Ctx, errs validation.FieldErrors) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Invalid request body",
	})
}

// respondError maps flow and wizard errors onto the response envelope.
// Anything unrecognised is logged and reported as a 500.
func respondError(c *fiber.Ctx, err error) error {
	if fe, ok := account.FieldErrors(err); ok {
		return validationFail(c, fe)
	}

	switch {
	case errors.Is(err, wizard.ErrSubmissionInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Your registration is already being submitted",
		})
	case errors.Is(err, wizard.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "This action is not available on the current step",
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "Request was cancelled, please try again",
		})
	}

	logger.Error("request failed", "path", c.Path(), "err", err)
	return fail500(c, "Something went wrong")
}

// ErrorHandler renders fiber errors in the same envelope as handler
// responses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		logger.Error("unhandled error", "path", c.Path(), "err", err)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
