package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{InvalidTransitionError("COMPLETED", "ACCEPTED"), http.StatusBadRequest},
		{AuthorizationError("not yours"), http.StatusForbidden},
		{NotFoundError("missing"), http.StatusNotFound},
		{ConflictError("duplicate"), http.StatusConflict},
		{MisconfigurationError("JWT_SECRET not set"), http.StatusInternalServerError},
		{WrapInternal("store failed", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", ConflictError("duplicate booking"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestInvalidTransitionMessageNamesStates(t *testing.T) {
	err := InvalidTransitionError("PENDING", "COMPLETED")
	assert.Contains(t, err.Message, "PENDING")
	assert.Contains(t, err.Message, "COMPLETED")
}
