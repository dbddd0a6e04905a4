package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	cerrors "github.com/abgdnv/productcompare/internal/errors"
	"github.com/abgdnv/productcompare/internal/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_NewClient_RequiresEndpoint(t *testing.T) {
	_, err := NewClient(Config{}, discardLogger())
	assert.Error(t, err)
}

func Test_Client_FetchProducts(t *testing.T) {
	catalogJSON, err := os.ReadFile("../product/testdata/products.json")
	require.NoError(t, err)

	testCases := []struct {
		name          string
		handler       http.HandlerFunc
		expectedIDs   []int
		expectError   error
		expectMessage string
	}{
		{
			name: "Success - catalog decoded",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/products", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(catalogJSON)
			},
			expectedIDs: []int{1, 2, 3},
		},
		{
			name: "Success - empty catalog",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("[]"))
			},
			expectedIDs: []int{},
		},
		{
			name: "Success - null body yields empty catalog",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("null"))
			},
			expectedIDs: []int{},
		},
		{
			name: "Error - server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectError:   cerrors.ErrUnexpectedStatus,
			expectMessage: "Request failed with status code 500",
		},
		{
			name: "Error - malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":`))
			},
			expectMessage: "failed to decode catalog response",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			client, err := NewClient(Config{Endpoint: srv.URL + "/products"}, discardLogger())
			require.NoError(t, err)

			// when
			products, err := client.FetchProducts(context.Background())

			// then
			if tc.expectMessage != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectMessage)
				if tc.expectError != nil {
					assert.ErrorIs(t, err, tc.expectError)
				}
				assert.Nil(t, products)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedIDs, product.IDs(products))
		})
	}
}

func Test_Client_FetchProducts_TransportError(t *testing.T) {
	// given
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()
	client, err := NewClient(Config{Endpoint: endpoint}, discardLogger())
	require.NoError(t, err)

	// when
	products, err := client.FetchProducts(context.Background())

	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog request failed")
	assert.Nil(t, products)
}

func Test_Client_FetchProducts_Timeout(t *testing.T) {
	// given
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)
	client, err := NewClient(Config{Endpoint: srv.URL, Timeout: 50 * time.Millisecond}, discardLogger())
	require.NoError(t, err)

	// when
	_, err = client.FetchProducts(context.Background())

	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog request failed")
}
