package grpc

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

var kindCodes = map[shared.ErrorKind]codes.Code{
	shared.KindInvalidIdentifier:     codes.InvalidArgument,
	shared.KindInvalidRequest:        codes.InvalidArgument,
	shared.KindNotFound:              codes.NotFound,
	shared.KindIneligibleActor:       codes.FailedPrecondition,
	shared.KindInsufficientResources: codes.ResourceExhausted,
	shared.KindCancelled:             codes.Aborted,
	shared.KindUnauthenticated:       codes.Unauthenticated,
	shared.KindForbidden:             codes.PermissionDenied,
}

// toStatus converts a handler error to a gRPC status carrying its domain kind
func toStatus(err error) error {
	kind := shared.KindOf(err)
	code, ok := kindCodes[kind]
	if !ok {
		return status.Error(codes.Internal, err.Error())
	}
	return status.Error(code, string(kind)+": "+err.Error())
}

// fromStatus turns a status back into a domain error so callers can use errors.Is
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for kind, code := range kindCodes {
		prefix := string(kind) + ": "
		if st.Code() == code && len(st.Message()) > len(prefix) && st.Message()[:len(prefix)] == prefix {
			return shared.NewDomainError(kind, st.Message()[len(prefix):])
		}
	}
	return err
}

func wrapInvalid(err error) error {
	return shared.NewInvalidRequestError(err.Error())
}
