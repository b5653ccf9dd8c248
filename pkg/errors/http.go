package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var httpStatusByCode = map[string]int{
	ErrInternal:        http.StatusInternalServerError,
	ErrNotFound:        http.StatusNotFound,
	ErrInvalidArgument: http.StatusBadRequest,
	ErrUnauthenticated: http.StatusUnauthorized,
	ErrUnauthorized:    http.StatusForbidden,
	ErrConflict:        http.StatusConflict,
	ErrTimeout:         http.StatusGatewayTimeout,
	ErrNotImplemented:  http.StatusNotImplemented,
}

// ToHTTPStatus translates an error code into an HTTP status code.
func ToHTTPStatus(code string) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// JSON writes the error as the canonical {"error": ..., "code": ...} body.
// Unknown errors are shown to clients as an opaque internal error; the caller
// is expected to have logged the original.
func JSON(c echo.Context, err error) error {
	var appErr *AppError
	if As(err, &appErr) {
		return c.JSON(ToHTTPStatus(appErr.Code()), echo.Map{
			"error": appErr.Error(),
			"code":  appErr.Code(),
		})
	}

	if echoErr, ok := err.(*echo.HTTPError); ok {
		return c.JSON(echoErr.Code, echo.Map{
			"error": echoErr.Message,
			"code":  httpStatusToCode(echoErr.Code),
		})
	}

	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "internal server error",
		"code":  ErrInternal,
	})
}

func httpStatusToCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrInvalidArgument
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	case http.StatusGatewayTimeout:
		return ErrTimeout
	case http.StatusNotImplemented:
		return ErrNotImplemented
	default:
		return ErrInternal
	}
}
