package visitor

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "leadengine/pkg/domain"
	"leadengine/pkg/requestcontext"
)

func serve(r *http.Request) (id.VisitorID, *httptest.ResponseRecorder) {
	return serveWith(Config{}, r)
}

func serveWith(cfg Config, r *http.Request) (id.VisitorID, *httptest.ResponseRecorder) {
	var got id.VisitorID
	h := Middleware(cfg)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = requestcontext.VisitorID(r.Context())
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return got, w
}

func TestMiddleware(t *testing.T) {
	t.Run("mints and sets cookie for new visitor", func(t *testing.T) {
		got, w := serve(httptest.NewRequest(http.MethodGet, "/", nil))
		require.False(t, got.IsNil())

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, CookieName, cookies[0].Name)
		assert.Equal(t, got.String(), cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("reuses cookie", func(t *testing.T) {
		existing := id.NewVisitorID()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: existing.String()})

		got, w := serve(r)
		assert.Equal(t, existing, got)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		header := id.NewVisitorID()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderName, header.String())
		r.AddCookie(&http.Cookie{Name: CookieName, Value: id.NewVisitorID().String()})

		got, _ := serve(r)
		assert.Equal(t, header, got)
	})

	t.Run("malformed cookie is replaced", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-uuid"})

		got, w := serve(r)
		assert.False(t, got.IsNil())
		assert.Len(t, w.Result().Cookies(), 1)
	})
}

// prefixCodec stands in for a signing codec.
type prefixCodec struct{}

func (prefixCodec) Encode(v id.VisitorID) (string, error) { return "signed." + v.String(), nil }

func (prefixCodec) Decode(s string) (id.VisitorID, error) {
	if !strings.HasPrefix(s, "signed.") {
		return id.VisitorID{}, errors.New("unsigned")
	}
	return id.ParseVisitorID(strings.TrimPrefix(s, "signed."))
}

func TestMiddlewareWithCodec(t *testing.T) {
	cfg := Config{Codec: prefixCodec{}}

	t.Run("sets encoded cookie and header", func(t *testing.T) {
		got, w := serveWith(cfg, httptest.NewRequest(http.MethodGet, "/", nil))
		require.False(t, got.IsNil())

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "signed."+got.String(), cookies[0].Value)
		assert.Equal(t, "signed."+got.String(), w.Header().Get(HeaderName))
	})

	t.Run("accepts encoded cookie", func(t *testing.T) {
		existing := id.NewVisitorID()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "signed." + existing.String()})

		got, w := serveWith(cfg, r)
		assert.Equal(t, existing, got)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("rejects bare uuid", func(t *testing.T) {
		forged := id.NewVisitorID()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderName, forged.String())

		got, w := serveWith(cfg, r)
		assert.NotEqual(t, forged, got)
		assert.Len(t, w.Result().Cookies(), 1)
	})
}
