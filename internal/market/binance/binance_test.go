package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePriceUsd_NoSymbolConfigured(t *testing.T) {
	s := NewSource("")

	_, err := s.ResolvePriceUsd(context.Background(), "0xdead")
	assert.Error(t, err)
}

func TestResolvePriceUsd_Ticker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/price", r.URL.Path)
		assert.Equal(t, "TOKENUSDT", r.URL.Query().Get("symbol"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"symbol":"TOKENUSDT","price":"2.50000000"}`))
	}))
	defer srv.Close()

	s := NewSource("TOKENUSDT")
	s.SetBaseURL(srv.URL)

	price, err := s.ResolvePriceUsd(context.Background(), "0xdead")
	require.NoError(t, err)
	assert.Equal(t, 2.5, price)
}

func TestResolvePriceUsd_BadPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"symbol":"TOKENUSDT","price":"0.00000000"}`))
	}))
	defer srv.Close()

	s := NewSource("TOKENUSDT")
	s.SetBaseURL(srv.URL)

	_, err := s.ResolvePriceUsd(context.Background(), "0xdead")
	assert.Error(t, err)
}
