package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(KindNotFound, "room not found")
	assert.Equal(t, KindNotFound, KindOf(err))

	wrapped := fmt.Errorf("handling request: %w", err)
	assert.Equal(t, KindNotFound, KindOf(wrapped))

	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("duplicate entry")
	err := Wrap(cause, KindConflict, "could not allocate identifiers")

	assert.Equal(t, KindConflict, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "could not allocate identifiers")
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:            http.StatusBadRequest,
		KindNotFound:              http.StatusNotFound,
		KindInsufficientInventory: http.StatusConflict,
		KindRoomUnavailable:       http.StatusConflict,
		KindConflict:              http.StatusConflict,
		KindInactiveState:         http.StatusConflict,
		KindInternal:              http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), string(kind))
	}
}
