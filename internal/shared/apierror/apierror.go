// Package apierror defines the JSON error body returned by feature handlers.
package apierror

// Response is the error payload for 4xx/5xx responses that are not auth failures.
type Response struct {
	Error string `json:"error"`
}
