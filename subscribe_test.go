package steamworkshop_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamworkshop/steamworkshop-go"
)

// TestSubscribe tests subscribing with options.
func TestSubscribe(t *testing.T) {
	// Arrange
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/IPublishedFileService/Subscribe/v1/", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, testAPIKey, q.Get("key"))
		assert.Equal(t, "121221044", q.Get("publishedfileid"))
		assert.Equal(t, "1", q.Get("list_type"))
		assert.Equal(t, "true", q.Get("notify_client"))
		assert.Equal(t, "550", q.Get("appid"))

		mustEncode(w, map[string]interface{}{"response": map[string]interface{}{}})
	}, steamworkshop.WithAPIKey(testAPIKey))

	// Act
	err := client.Subscribe(context.Background(), "121221044",
		steamworkshop.WithNotifyClient(true),
		steamworkshop.WithAppID(550),
	)

	// Assert
	require.NoError(t, err)
}

// TestSubscribe_Defaults tests that no optional parameters are sent by
// default.
func TestSubscribe_Defaults(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("notify_client"))
		assert.False(t, q.Has("appid"))
		mustEncode(w, map[string]interface{}{"response": map[string]interface{}{}})
	}, steamworkshop.WithAPIKey(testAPIKey))

	require.NoError(t, client.Subscribe(context.Background(), "121221044"))
}

// TestUnsubscribe tests unsubscribing.
func TestUnsubscribe(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/IPublishedFileService/Unsubscribe/v1/", r.URL.Path)
		assert.Equal(t, "121221044", r.URL.Query().Get("publishedfileid"))
		assert.Equal(t, "1", r.URL.Query().Get("list_type"))
		mustEncode(w, map[string]interface{}{"response": map[string]interface{}{}})
	}, steamworkshop.WithAPIKey(testAPIKey))

	require.NoError(t, client.Unsubscribe(context.Background(), "121221044"))
}

// TestSubscribe_RequiresKey tests that writes fail without a key before any
// request, even through a proxy.
func TestSubscribe_RequiresKey(t *testing.T) {
	var calls atomic.Int32
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	err := client.Subscribe(context.Background(), "121221044")
	require.Error(t, err)
	assert.ErrorIs(t, err, steamworkshop.ErrAuthRequired)

	err = client.Unsubscribe(context.Background(), "121221044")
	require.Error(t, err)
	assert.ErrorIs(t, err, steamworkshop.ErrAuthRequired)

	_, err = client.CanSubscribe(context.Background(), "121221044")
	require.Error(t, err)
	assert.ErrorIs(t, err, steamworkshop.ErrAuthRequired)

	assert.Zero(t, calls.Load())
}

// TestSubscribe_InvalidID tests id validation.
func TestSubscribe_InvalidID(t *testing.T) {
	var calls atomic.Int32
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}, steamworkshop.WithAPIKey(testAPIKey))

	for _, id := range []string{"", "abc", "12 34"} {
		assert.ErrorIs(t, client.Subscribe(context.Background(), id), steamworkshop.ErrBadRequest, id)
		assert.ErrorIs(t, client.Unsubscribe(context.Background(), id), steamworkshop.ErrBadRequest, id)
	}
	assert.Zero(t, calls.Load())
}

// TestSubscribe_Errors tests failures reported by Steam.
func TestSubscribe_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "forbidden",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			want: steamworkshop.ErrHTTPStatus,
		},
		{
			name: "no envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				mustEncode(w, map[string]interface{}{})
			},
			want: steamworkshop.ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, tt.handler, steamworkshop.WithAPIKey(testAPIKey))

			err := client.Subscribe(context.Background(), "121221044")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// TestCanSubscribe tests the subscription check.
func TestCanSubscribe(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
		want bool
	}{
		{name: "bool", body: map[string]interface{}{"can_subscribe": true}, want: true},
		{name: "number", body: map[string]interface{}{"can_subscribe": 1}, want: true},
		{name: "false", body: map[string]interface{}{"can_subscribe": false}, want: false},
		{name: "missing", body: map[string]interface{}{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/IPublishedFileService/CanSubscribe/v1/", r.URL.Path)
				assert.Equal(t, "121221044", r.URL.Query().Get("publishedfileid"))
				mustEncode(w, map[string]interface{}{"response": tt.body})
			}, steamworkshop.WithAPIKey(testAPIKey))

			ok, err := client.CanSubscribe(context.Background(), "121221044")

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
