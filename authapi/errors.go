package authapi

import (
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/roundandgo/sessionkit/enums"
	"github.com/roundandgo/sessionkit/models"
)

const msgNetwork = "network error, check connection"

// failure normalizes a transport result into an AuthError. A nil return
// means the response was a 2xx.
func failure(resp *resty.Response, err error) *models.AuthError {
	if err != nil {
		return &models.AuthError{Kind: enums.ErrKindNetwork, Message: msgNetwork}
	}
	if resp.IsSuccess() {
		return nil
	}

	status := resp.StatusCode()
	message := gjson.Get(resp.String(), "message").String()
	if message == "" {
		message = fallbackMessage(status)
	}
	return &models.AuthError{Kind: enums.ErrKindHTTP, Status: status, Message: message}
}

// fallbackMessage synthesizes a user-facing message when the error body
// carries none.
func fallbackMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "account not found"
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusTooManyRequests:
		return "rate limited, retry later"
	case http.StatusInternalServerError:
		return "server error, retry later"
	default:
		return msgNetwork
	}
}

func invalidInput(err error) *models.AuthError {
	return &models.AuthError{Kind: enums.ErrKindInvalidInput, Message: err.Error()}
}
