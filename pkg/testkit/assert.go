package testkit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertAllCalled fails the test if any scripted step was never matched.
func (mt *MockTransport) AssertAllCalled(t *testing.T) {
	t.Helper()
	for _, desc := range mt.Unused() {
		assert.Fail(t, "mock step never called", desc)
	}
}

// AssertNoCalls fails the test if any request reached the transport at all.
// Used for local-precondition paths that must not spend a round trip.
func (mt *MockTransport) AssertNoCalls(t *testing.T) {
	t.Helper()
	assert.Empty(t, mt.Calls(), "expected no outgoing requests")
}

// AssertJSONBody deep-compares a recorded request body against expected,
// normalising both through JSON unmarshal so key order never matters.
func AssertJSONBody(t *testing.T, expected any, actual []byte) {
	t.Helper()

	expRaw, err := json.Marshal(expected)
	require.NoError(t, err)

	var expVal, actVal interface{}
	require.NoError(t, json.Unmarshal(expRaw, &expVal))
	require.NoError(t, json.Unmarshal(actual, &actVal), "request body is not valid JSON: %s", string(actual))

	assert.Equal(t, expVal, actVal, "request body mismatch")
}
