package api

import (
	"context"
	"errors"

	"github.com/pribylovaa/celebrations-service/internal/service"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToStatus переводит ошибку ядра в gRPC-статус — общий словарь транспортов.
//
// Маппинг:
//   - ErrInvalidArgument -> InvalidArgument;
//   - ErrNotFound -> NotFound;
//   - ErrPermissionDenied -> PermissionDenied;
//   - ErrConflict -> Aborted;
//   - context.DeadlineExceeded -> DeadlineExceeded;
//   - context.Canceled -> Canceled;
//   - прочее -> Internal с нейтральным сообщением.
//
// Сообщение клиентских ошибок — DetailError.Detail (без префиксов op).
func ToStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}

	if st, ok := status.FromError(err); ok {
		return st
	}

	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return status.New(codes.InvalidArgument, message(err, "invalid argument"))
	case errors.Is(err, service.ErrNotFound):
		return status.New(codes.NotFound, message(err, "not found"))
	case errors.Is(err, service.ErrPermissionDenied):
		return status.New(codes.PermissionDenied, message(err, "permission denied"))
	case errors.Is(err, service.ErrConflict):
		return status.New(codes.Aborted, message(err, "conflict"))
	case errors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.New(codes.Canceled, "canceled")
	default:
		return status.New(codes.Internal, "internal error")
	}
}

func message(err error, fallback string) string {
	var de *service.DetailError
	if errors.As(err, &de) && de.Detail != "" {
		return de.Detail
	}

	return fallback
}
