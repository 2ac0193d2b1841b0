package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	checkoutdomain "github.com/thinkfashz/Osart/internal/domains/checkout/domain"
)

func sampleOrder(t *testing.T) *checkoutdomain.Order {
	t.Helper()
	profile := checkoutdomain.ShippingProfile{
		Identity: checkoutdomain.Identity{FullName: "Ana Rojas", Email: "ana@osart.cl", Phone: "+56911111111"},
		Address:  "Av. Providencia 1234", City: "Santiago", Region: checkoutdomain.RegionMetropolitana,
	}
	order, err := checkoutdomain.NewOrder("order-1", profile,
		[]checkoutdomain.OrderLine{{ProductID: 1, Name: "Arduino", UnitPrice: 12500, Quantity: 2}}, 25000, 1000)
	require.NoError(t, err)
	return order
}

func TestPublish_InsertsRow(t *testing.T) {
	var captured []orderRow
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/rest/v1/orders", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("apikey"))
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, err := New(server.URL, "test-key", server.Client(), nil)
	require.NoError(t, err)

	require.NoError(t, client.Publish(context.Background(), sampleOrder(t)))
	require.Len(t, captured, 1)
	require.Equal(t, "order-1", captured[0].ID)
	require.Equal(t, int64(26000), captured[0].Total)
}

func TestPublish_SurfacesRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := New(server.URL, "test-key", server.Client(), nil)
	require.NoError(t, err)

	err = client.Publish(context.Background(), sampleOrder(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "order sink rejected insert")
}

func TestDisabledClientIsNoOp(t *testing.T) {
	var client *Client
	require.False(t, client.Enabled())
	require.NoError(t, client.Publish(context.Background(), sampleOrder(t)))
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New("", "", nil, nil)
	require.Error(t, err)
}
