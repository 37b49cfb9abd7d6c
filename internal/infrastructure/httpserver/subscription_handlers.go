package httpserver

import (
	"errors"
	"net/http"

	"github.com/feathermail/newsletter-service/internal/core/domain/subscription"
	"github.com/labstack/echo/v4"
)

type subscribeForm struct {
	Name  string `form:"name"`
	Email string `form:"email"`
}

// subscribe handles POST /subscriptions with form-encoded name and email.
func (s *Server) subscribe(c echo.Context) error {
	var form subscribeForm
	if err := c.Bind(&form); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	if err := s.subscriptionSvc.Subscribe(c.Request().Context(), form.Name, form.Email); err != nil {
		return s.errorResponse(c, err)
	}

	return c.NoContent(http.StatusOK)
}

// confirmSubscription handles /subscriptions/confirm?token=...
func (s *Server) confirmSubscription(c echo.Context) error {
	token := c.QueryParam("token")

	if err := s.subscriptionSvc.Confirm(c.Request().Context(), token); err != nil {
		return s.errorResponse(c, err)
	}

	return c.NoContent(http.StatusOK)
}

// errorStatus maps each subscription error variant to its response status.
// The variant set is closed; anything unrecognized is a server fault.
func errorStatus(err error) int {
	var (
		validationErr  *subscription.ValidationError
		notFoundErr    *subscription.NotFoundError
		persistenceErr *subscription.PersistenceError
		dispatchErr    *subscription.DispatchError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusBadRequest
	case errors.As(err, &persistenceErr):
		return http.StatusInternalServerError
	case errors.As(err, &dispatchErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse logs the failure and replies with the mapped status and an
// empty body. No structured error payload is returned to the caller.
func (s *Server) errorResponse(c echo.Context, err error) error {
	status := errorStatus(err)

	if s.logger != nil {
		if status >= http.StatusInternalServerError {
			s.logger.WithError(err).Error("request failed")
		} else {
			s.logger.WithError(err).Debug("request rejected")
		}
	}

	return c.NoContent(status)
}
