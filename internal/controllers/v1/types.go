// Package v1 implements the HTTP API of the Kopilka backend.
package v1

import (
	"time"

	kp_uuid "github.com/kopilka/backend/internal/uuid"
)

type URIID struct {
	ID kp_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type QueryMonth struct {
	Month time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2022-07"` // Year and month in YYYY-MM format
}

// Response is the generic envelope for a single resource.
type Response[T any] struct {
	Data  *T      `json:"data"`                                                          // The resource, if the request was successful
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// ListResponse is the generic envelope for a list of resources.
type ListResponse[T any] struct {
	Data  []T     `json:"data"`                                                          // List of resources
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func newResponse[T any](data T) Response[T] {
	return Response[T]{Data: &data}
}

func errorResponse[T any](err error) Response[T] {
	s := err.Error()
	return Response[T]{Error: &s}
}

func errorListResponse[T any](err error) ListResponse[T] {
	s := err.Error()
	return ListResponse[T]{Error: &s}
}
