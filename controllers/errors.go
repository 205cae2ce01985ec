package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/smileline/dental-clinic-app/scheduler"
)

// SchedulerErrorStatus maps the engine's typed errors onto HTTP statuses so
// every controller renders them the same way: validation 400, missing
// dependency 404, booking conflict 409, illegal transition 422.
func SchedulerErrorStatus(err error) int {
	var validationErr *scheduler.ValidationError
	var conflictErr *scheduler.ConflictError
	var transitionErr *scheduler.IllegalTransitionError
	var missingErr *scheduler.DependencyMissingError

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &missingErr):
		return fiber.StatusNotFound
	case errors.As(err, &conflictErr):
		return fiber.StatusConflict
	case errors.As(err, &transitionErr):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
