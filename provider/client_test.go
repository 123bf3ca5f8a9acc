package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeProvider(t *testing.T, handler func(action string, r *http.Request) interface{}) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-key", r.PostFormValue("key"))

		resp := handler(r.PostFormValue("action"), r)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestGetBalance(t *testing.T) {
	server := fakeProvider(t, func(action string, r *http.Request) interface{} {
		assert.Equal(t, "balance", action)
		return map[string]string{"balance": "1250000.50", "currency": "VND"}
	})
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	balance, err := client.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1250000.50", balance.Balance)
	assert.Equal(t, "VND", balance.Currency)
}

func TestGetServices(t *testing.T) {
	server := fakeProvider(t, func(action string, r *http.Request) interface{} {
		assert.Equal(t, "services", action)
		return []map[string]interface{}{
			{"service": 101, "name": "Follows", "category": "Instagram", "rate": "2.5", "min": 100, "max": 50000},
			{"service": "102", "name": "Likes", "category": "Instagram", "rate": "0.8", "min": "50", "max": "10000"},
		}
	})
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	services, err := client.GetServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 2)
	// Numeric fields come back as either strings or numbers depending on the panel
	assert.Equal(t, "101", services[0].Service.String())
	assert.Equal(t, "102", services[1].Service.String())
	assert.Equal(t, "Follows", services[0].Name)
}

func TestAddOrder(t *testing.T) {
	server := fakeProvider(t, func(action string, r *http.Request) interface{} {
		assert.Equal(t, "add", action)
		assert.Equal(t, "101", r.PostFormValue("service"))
		assert.Equal(t, "https://example.com/p/1", r.PostFormValue("link"))
		assert.Equal(t, "1000", r.PostFormValue("quantity"))
		return map[string]interface{}{"order": 987654}
	})
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	orderID, err := client.AddOrder(context.Background(), 101, "https://example.com/p/1", 1000)
	require.NoError(t, err)
	assert.Equal(t, "987654", orderID)
}

func TestGetOrderStatus(t *testing.T) {
	server := fakeProvider(t, func(action string, r *http.Request) interface{} {
		assert.Equal(t, "status", action)
		assert.Equal(t, "987654", r.PostFormValue("order"))
		return map[string]interface{}{
			"status": "In progress", "charge": "2500", "start_count": 1500, "remains": 400,
		}
	})
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	status, err := client.GetOrderStatus(context.Background(), "987654")
	require.NoError(t, err)
	assert.Equal(t, "In progress", status.Status)
	assert.Equal(t, "1500", status.StartCount.String())
	assert.Equal(t, "400", status.Remains.String())
}

func TestGetOrderStatusProviderError(t *testing.T) {
	server := fakeProvider(t, func(action string, r *http.Request) interface{} {
		return map[string]string{"error": "Incorrect order ID"}
	})
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.GetOrderStatus(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect order ID")
}

func TestNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.GetBalance(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
