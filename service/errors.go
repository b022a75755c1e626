package service

import (
	"errors"
	"fmt"

	"github.com/labstack/gommon/log"
	"github.com/syncnotes/syncnotes/store"
)

type Code string

const (
	CodeUnauthenticated Code = "Unauthenticated"
	CodeAccessDenied    Code = "AccessDenied"
	CodeNotFound        Code = "NotFound"
	CodeInvalidArgument Code = "InvalidArgument"
	CodeStoreFailure    Code = "StoreFailure"
)

// Fault is an error reported to the calling client only. Message is safe to
// send; Err is kept server side.
type Fault struct {
	Code    Code
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Code, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Is matches any Fault with the same code, so errors.Is(err, ErrNotFound)
// works for every not-found fault.
func (f *Fault) Is(target error) bool {
	t, ok := target.(*Fault)
	if !ok {
		return false
	}
	return t.Code == f.Code
}

var (
	ErrUnauthenticated = &Fault{Code: CodeUnauthenticated, Message: "not authenticated"}
	ErrAccessDenied    = &Fault{Code: CodeAccessDenied, Message: "access denied"}
	ErrNotFound        = &Fault{Code: CodeNotFound, Message: "not found"}
	ErrInvalidArgument = &Fault{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrStoreFailure    = &Fault{Code: CodeStoreFailure, Message: "storage unavailable"}
)

// CodeOf reports the fault code carried by err, or "" for a nil error.
// Errors that are not faults are treated as store failures.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var f *Fault
	if errors.As(err, &f) {
		return f.Code
	}
	return CodeStoreFailure
}

// MessageOf returns the client-safe message for err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var f *Fault
	if errors.As(err, &f) {
		return f.Message
	}
	return ErrStoreFailure.Message
}

func accessDenied(format string, args ...any) error {
	return &Fault{Code: CodeAccessDenied, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return &Fault{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func invalidArgument(format string, args ...any) error {
	return &Fault{Code: CodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// storeFailure logs the cause and hides it from the client.
func storeFailure(op string, err error) error {
	log.Errorf("%s: store failure: %v", op, err)
	return &Fault{Code: CodeStoreFailure, Message: ErrStoreFailure.Message, Err: err}
}

// fromStore maps a store error to a fault, turning missing rows into
// NotFound.
func fromStore(op string, what string, err error) error {
	if errors.Is(err, store.ErrItemNotFound) {
		return notFound("%s not found", what)
	}
	return storeFailure(op, err)
}

func requireCaller(callerId string) error {
	if callerId == "" {
		return ErrUnauthenticated
	}
	return nil
}
