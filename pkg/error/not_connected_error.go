package error

import "net/http"

// NotConnectedError is returned by every send entry point when the
// messaging session is not in the connected state. Sends are never queued.
type NotConnectedError string

func (err NotConnectedError) Error() string {
	return string(err)
}

func (err NotConnectedError) ErrCode() string {
	return "NOT_CONNECTED"
}

func (err NotConnectedError) StatusCode() int {
	return http.StatusServiceUnavailable
}
