package faculty

import (
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// HTTPError is returned by the clients for any non-2xx response.
type HTTPError struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

func (e *HTTPError) Error() string {
	if e.ErrorCode == "" {
		return fmt.Sprintf("%s (status code %d)", e.Message, e.StatusCode)
	}

	return fmt.Sprintf("%s (error code %s, status code %d)", e.Message, e.ErrorCode, e.StatusCode)
}

// newHTTPError reads the error and errorCode fields of a Faculty error body.
// Bodies that are not JSON keep the status text as message.
func newHTTPError(statusCode int, body []byte) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
	}

	if !gjson.ValidBytes(body) {
		return httpErr
	}

	if message := gjson.GetBytes(body, "error"); message.Exists() {
		httpErr.Message = message.String()
	}
	httpErr.ErrorCode = gjson.GetBytes(body, "errorCode").String()

	return httpErr
}
