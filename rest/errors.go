package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// ClientError is a 4xx response from the API. Code and Data are only set
// when the body carried the venue's structured error shape.
type ClientError struct {
	StatusCode int64
	Code       string
	Msg        string
	Headers    http.Header
	Data       any
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("client error (status %d): %s", e.StatusCode, e.Msg)
}

// ServerError is a 5xx response from the API.
type ServerError struct {
	StatusCode int64
	Text       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Text)
}

type apiErrorBody struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// handleException maps non-2xx responses to typed errors. 4xx bodies that
// do not parse as the structured shape are carried verbatim in Msg.
func handleException(resp *resty.Response) error {
	statusCode := int64(resp.StatusCode())

	switch {
	case statusCode < 400:
		return nil

	case statusCode < 500:
		clientErr := &ClientError{
			StatusCode: statusCode,
			Msg:        string(resp.Body()),
			Headers:    resp.Header(),
		}

		var body apiErrorBody
		if err := json.Unmarshal(resp.Body(), &body); err == nil &&
			(body.Code != "" || body.Msg != "") {
			clientErr.Code = body.Code
			clientErr.Msg = body.Msg
			clientErr.Data = body.Data
		}

		return clientErr

	default:
		return &ServerError{
			StatusCode: statusCode,
			Text:       string(resp.Body()),
		}
	}
}
