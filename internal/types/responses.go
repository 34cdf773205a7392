// Package types contains the shared request/response and adapter contract types
package types

// Slug is a short machine-readable marker identifying the response kind
type Slug string

// Response slugs
const (
	SuccessSlug      Slug = "success"
	ErrorSlug        Slug = "error"
	InvalidInputSlug Slug = "invalid_input"
	ServerErrorSlug  Slug = "server_error"
	NotFoundSlug     Slug = "not_found"
	ConflictSlug     Slug = "conflict"
)

// SlugResponse is the standard JSON envelope returned by the API
type SlugResponse struct {
	Slug  Slug        `json:"slug"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// ListResponse is a generic response structure for lists
type ListResponse[T any] struct {
	Rows  []T `json:"rows"`
	Total int `json:"total"`
}

// Success wraps data in a success envelope
func Success(data interface{}) SlugResponse {
	return SlugResponse{Slug: SuccessSlug, Data: data}
}

// ErrInvalidInput builds an invalid-input error envelope
func ErrInvalidInput(msg string) SlugResponse {
	return SlugResponse{Slug: InvalidInputSlug, Error: msg}
}

// ErrServer builds a server error envelope
func ErrServer(msg string) SlugResponse {
	return SlugResponse{Slug: ServerErrorSlug, Error: msg}
}

// ErrNotFound builds a not-found error envelope
func ErrNotFound(msg string) SlugResponse {
	return SlugResponse{Slug: NotFoundSlug, Error: msg}
}

// ErrConflict builds a conflict error envelope
func ErrConflict(msg string) SlugResponse {
	return SlugResponse{Slug: ConflictSlug, Error: msg}
}
