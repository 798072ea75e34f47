package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delivery-desk/v2/internal/auth"
)

// staticToken is a TokenSource with a fixed value
type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestRequestsCarryBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewApiClient(server.URL, nil, staticToken("tok-123"))
	var out map[string]interface{}
	require.NoError(t, client.Get("/deliveries", &out))

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	var sawHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewApiClient(server.URL, nil, staticToken(""))
	var out map[string]interface{}
	require.NoError(t, client.Get("/deliveries", &out))

	assert.Empty(t, gotAuth)
	assert.False(t, sawHeader)
}

func TestUnauthorizedMapsToSessionExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewApiClient(server.URL, nil, staticToken("tok"))
	err := client.Get("/deliveries", &map[string]interface{}{})
	assert.ErrorIs(t, err, auth.ErrSessionExpired)
}

func TestServerFaultMapsToServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewApiClient(server.URL, nil, staticToken("tok"))
	err := client.Get("/deliveries", &map[string]interface{}{})

	var serverErr *auth.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadGateway, serverErr.StatusCode)
}

func TestFieldErrorsMapToValidationErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": map[string]string{"name": "name is too long"},
		})
	}))
	defer server.Close()

	client := NewApiClient(server.URL, nil, staticToken("tok"))
	err := client.Patch("/auth/profile", map[string]string{"name": "x"}, &map[string]interface{}{})

	var fields validation.Errors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "name is too long", fields["name"].Error())
}

func TestPlainClientErrorMapsToServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"not found"}`))
	}))
	defer server.Close()

	client := NewApiClient(server.URL, nil, staticToken("tok"))
	err := client.Get("/nowhere", &map[string]interface{}{})

	var serverErr *auth.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusNotFound, serverErr.StatusCode)
}

func TestTransportFailureMapsToNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	client := NewApiClient(server.URL, nil, staticToken("tok"))
	err := client.Get("/deliveries", &map[string]interface{}{})

	var netErr *auth.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestMalformedSuccessBodyIsNormalizedToServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": `)) // truncated JSON
	}))
	defer server.Close()

	client := NewApiClient(server.URL, nil, staticToken("tok"))
	err := client.Get("/deliveries", &map[string]interface{}{})

	var serverErr *auth.ServerError
	assert.ErrorAs(t, err, &serverErr)
}

func TestNoContentResponsesNeedNoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewApiClient(server.URL, nil, staticToken("tok"))
	assert.NoError(t, client.Post("/auth/logout", nil, nil))
}

func TestResolveAssetURL(t *testing.T) {
	client := NewApiClient("http://localhost:8000/api", nil, staticToken(""))

	assert.Equal(t, "http://localhost:8000/uploads/a.png", client.ResolveAssetURL("/uploads/a.png"))
	assert.Equal(t, "https://cdn.example.com/a.png", client.ResolveAssetURL("https://cdn.example.com/a.png"))
	assert.Equal(t, "", client.ResolveAssetURL(""))
}

func TestResolveAssetURLWithoutAPISuffix(t *testing.T) {
	client := NewApiClient("http://localhost:9000", nil, staticToken(""))
	assert.Equal(t, "http://localhost:9000/uploads/a.png", client.ResolveAssetURL("/uploads/a.png"))
}
