package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"leadengine/pkg/requestcontext"
)

func TestWithClockPinsUTCStartTime(t *testing.T) {
	local := time.Date(2025, 6, 1, 9, 30, 0, 0, time.FixedZone("EDT", -4*3600))
	var got time.Time
	h := WithClock(func() time.Time { return local })(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = requestcontext.Now(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, got.Equal(local))
	assert.Equal(t, time.UTC, got.Location())
}
