package airtm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_ScrapesPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`<div class="rate"><span>1 USD</span> = <b>9.85</b> BOB</div>`))
	}))
	defer srv.Close()

	rate, err := New(srv.URL).Quote(context.Background(), srv.Client())
	require.NoError(t, err)
	assert.InDelta(t, 9.85, rate, 1e-9)
}

func TestParse_NoMatch(t *testing.T) {
	_, err := parse([]byte(`<html>maintenance</html>`))
	require.Error(t, err)
}

func TestParse_Decimal(t *testing.T) {
	got, err := parse([]byte(`USD/BOB: 10.42`))
	require.NoError(t, err)
	assert.InDelta(t, 10.42, got, 1e-9)
}

func TestQuote_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Quote(context.Background(), srv.Client())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
