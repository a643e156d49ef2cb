package firestore

import (
	"context"
	"errors"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MapError translates Firestore/gRPC failures into the shared error taxonomy.
// FailedPrecondition is how Firestore reports a missing composite index, which
// callers surface differently from a transient outage.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	switch status.Code(err) {
	case codes.NotFound:
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, op)
	case codes.FailedPrecondition:
		return pkgerrors.Wrap(pkgerrors.CodeMissingIndex, err, op)
	case codes.Canceled:
		return context.Canceled
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}

// IsNotFound reports whether the error maps to a missing document.
func IsNotFound(err error) bool {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Code() == pkgerrors.CodeNotFound
	}
	return status.Code(err) == codes.NotFound
}

func isIteratorDone(err error) bool {
	return errors.Is(err, iterator.Done)
}
