package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	adminapp "github.com/thinkfashz/Osart/internal/domains/admin/application"
	cartapp "github.com/thinkfashz/Osart/internal/domains/cart/application"
	cartdomain "github.com/thinkfashz/Osart/internal/domains/cart/domain"
	cartports "github.com/thinkfashz/Osart/internal/domains/cart/ports"
	catalogapp "github.com/thinkfashz/Osart/internal/domains/catalog/application"
	catalogports "github.com/thinkfashz/Osart/internal/domains/catalog/ports"
	checkoutapp "github.com/thinkfashz/Osart/internal/domains/checkout/application"
	checkoutdomain "github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	checkoutports "github.com/thinkfashz/Osart/internal/domains/checkout/ports"
	quizapp "github.com/thinkfashz/Osart/internal/domains/quiz/application"
	quizports "github.com/thinkfashz/Osart/internal/domains/quiz/ports"
	usersapp "github.com/thinkfashz/Osart/internal/domains/users/application"
	usersports "github.com/thinkfashz/Osart/internal/domains/users/ports"
	verificationdomain "github.com/thinkfashz/Osart/internal/domains/verification/domain"
	apierrors "github.com/thinkfashz/Osart/internal/shared/errors"
)

// respondBadRequest reports a malformed payload as RFC 7807.
func respondBadRequest(c *gin.Context, err error) {
	apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

// respondServiceError maps domain and application errors onto the problem
// taxonomy. Ordering matters: the most specific sentinel wins.
func respondServiceError(c *gin.Context, err error) {
	var validation *checkoutdomain.ValidationError
	if errors.As(err, &validation) {
		fields := make(map[string]string, len(validation.Fields))
		for _, field := range validation.Fields {
			fields[field] = "required"
		}
		apierrors.Respond(c, apierrors.NewValidationProblem(fields))
		return
	}

	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, cartports.ErrNotFound),
		errors.Is(err, cartdomain.ErrLineNotFound),
		errors.Is(err, checkoutports.ErrNotFound),
		errors.Is(err, checkoutports.ErrOrderNotFound),
		errors.Is(err, usersports.ErrNotFound),
		errors.Is(err, quizports.ErrNotFound),
		errors.Is(err, verificationdomain.ErrNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail(err.Error()))

	case errors.Is(err, verificationdomain.ErrCodeMismatch):
		apierrors.Respond(c, apierrors.NewVerificationProblem(err.Error(), true))
	case errors.Is(err, verificationdomain.ErrExpired),
		errors.Is(err, verificationdomain.ErrTooManyAttempts),
		errors.Is(err, verificationdomain.ErrConsumed):
		apierrors.Respond(c, apierrors.NewVerificationProblem(err.Error(), false))
	case errors.Is(err, checkoutdomain.ErrEmailNotVerified):
		apierrors.Respond(c, apierrors.NewVerificationProblem(err.Error(), true))

	case errors.Is(err, checkoutdomain.ErrPaymentMethodDisabled),
		errors.Is(err, checkoutdomain.ErrUnknownPaymentMethod),
		errors.Is(err, checkoutdomain.ErrInvalidStep),
		errors.Is(err, checkoutdomain.ErrAlreadyCompleted),
		errors.Is(err, checkoutdomain.ErrEmptyCart),
		errors.Is(err, cartdomain.ErrOutOfStock),
		errors.Is(err, usersports.ErrEmailTaken):
		apierrors.Respond(c, apierrors.ErrConflict.WithDetail(err.Error()))

	case errors.Is(err, usersports.ErrInvalidCredentials):
		apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))

	case errors.Is(err, adminapp.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrInvalidInput),
		errors.Is(err, quizapp.ErrInvalidInput),
		errors.Is(err, usersapp.ErrInvalidInput):
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))

	default:
		apierrors.Respond(c, apierrors.ErrInternal.WithDetail(http.StatusText(http.StatusInternalServerError)))
	}
}
