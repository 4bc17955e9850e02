package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// ErrorBody is the JSON error document exchanged between shards
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RemoteError is a non-retryable failure reported by a sibling shard. It carries the
// domain error kind matching the HTTP status, so errors.Is works across shards.
type RemoteError struct {
	*shared.DomainError
	StatusCode int
}

// NewRemoteError decodes a sibling's error response
func NewRemoteError(status int, body []byte) *RemoteError {
	var doc ErrorBody
	message := string(body)
	if err := json.Unmarshal(body, &doc); err == nil && doc.Message != "" {
		message = doc.Message
	}
	return &RemoteError{
		DomainError: shared.NewDomainError(KindForStatus(status), fmt.Sprintf("sibling shard answered %d: %s", status, message)),
		StatusCode:  status,
	}
}

// StatusForKind maps a domain error kind to the HTTP status a shard answers with
func StatusForKind(kind shared.ErrorKind) int {
	switch kind {
	case shared.KindInvalidIdentifier, shared.KindInvalidRequest:
		return http.StatusBadRequest
	case shared.KindNotFound, shared.KindCancelled:
		return http.StatusNotFound
	case shared.KindIneligibleActor:
		return http.StatusUnprocessableEntity
	case shared.KindInsufficientResources:
		return http.StatusConflict
	case shared.KindUnauthenticated:
		return http.StatusUnauthorized
	case shared.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// KindForStatus is the inverse of StatusForKind for 4xx statuses
func KindForStatus(status int) shared.ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return shared.KindInvalidRequest
	case http.StatusNotFound:
		return shared.KindNotFound
	case http.StatusUnprocessableEntity:
		return shared.KindIneligibleActor
	case http.StatusConflict:
		return shared.KindInsufficientResources
	case http.StatusUnauthorized:
		return shared.KindUnauthenticated
	case http.StatusForbidden:
		return shared.KindForbidden
	default:
		return shared.KindInvalidRequest
	}
}
