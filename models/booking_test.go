package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendExtensionStartsHistory(t *testing.T) {
	out := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	history, err := AppendExtension(nil, ExtensionEvent{
		ExtendedCheckOut: out,
		ExtendedOn:       time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),
		Reason:           "guest requested two more nights",
		AdditionalAmount: 3000,
	})
	require.NoError(t, err)

	events, err := DecodeExtensionHistory(history)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, out, events[0].ExtendedCheckOut)
	assert.Equal(t, 3000.0, events[0].AdditionalAmount)
}

func TestAppendExtensionIsAppendOnly(t *testing.T) {
	first, err := AppendExtension(nil, ExtensionEvent{
		ExtendedCheckOut: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		ExtendedOn:       time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),
		Reason:           "first extension",
	})
	require.NoError(t, err)

	second, err := AppendExtension(first, ExtensionEvent{
		ExtendedCheckOut: time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		ExtendedOn:       time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC),
		Reason:           "second extension",
	})
	require.NoError(t, err)

	events, err := DecodeExtensionHistory(second)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// The earlier entry survives byte-for-byte equivalent.
	assert.Equal(t, "first extension", events[0].Reason)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), events[0].ExtendedCheckOut)
	assert.Equal(t, "second extension", events[1].Reason)
}

func TestDecodeExtensionHistoryEmpty(t *testing.T) {
	events, err := DecodeExtensionHistory(nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDecodeExtensionHistoryCorrupt(t *testing.T) {
	_, err := DecodeExtensionHistory([]byte("not-json"))
	assert.Error(t, err)
}
