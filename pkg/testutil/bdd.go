package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Icegreeen/workos-go/pkg/platform/httpclient"
)

func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Given", desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "When", desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Then", desc, fn)
}

// ThenAPIError is a Then step for a failed API call: err must match the
// status sentinel and carry the given error code. The decoded error is
// returned for further checks.
func ThenAPIError(t *testing.T, err, sentinel error, code string) *httpclient.APIError {
	t.Helper()
	var apiErr *httpclient.APIError
	step(t, "Then", "the API answers "+code, func(t *testing.T) {
		require.ErrorIs(t, err, sentinel)
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, code, apiErr.Code)
	})
	if apiErr == nil {
		t.FailNow()
	}
	return apiErr
}

func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(keyword+" "+desc, fn)
}
