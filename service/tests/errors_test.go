package service_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/syncnotes/syncnotes/service"
)

func TestFaultMatching(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &service.Fault{Code: service.CodeNotFound, Message: "note n1 not found"})

	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.NotErrorIs(t, err, service.ErrAccessDenied)
	assert.Equal(t, service.CodeNotFound, service.CodeOf(err))
	assert.Equal(t, "note n1 not found", service.MessageOf(err))
}

func TestCodeOfPlainError(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, service.CodeStoreFailure, service.CodeOf(err))
	assert.Equal(t, "storage unavailable", service.MessageOf(err))
}

func TestFaultUnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := &service.Fault{Code: service.CodeStoreFailure, Message: "storage unavailable", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCodeOfNil(t *testing.T) {
	assert.Equal(t, service.Code(""), service.CodeOf(nil))
	assert.Empty(t, service.MessageOf(nil))
}
