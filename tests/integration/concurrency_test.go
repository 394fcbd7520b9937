package integration

import (
	"net/http"
	"sync"
	"testing"

	"strategy-vault/internal/adapter/http/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentSameProof hammers the paywall with one proof from many
// goroutines. The replay ledger's test-and-set must admit exactly one.
func TestConcurrentSameProof(t *testing.T) {
	app := newTestApp(t)
	header := proofHeader(t, "0xcontended")

	const n = 12
	codes := make([]int, n)
	bodies := make([]string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := app.do(http.MethodGet, premiumPath, nil, map[string]string{
				middleware.HeaderPayment: header,
			})
			codes[i] = w.Code
			bodies[i] = w.Body.String()
		}(i)
	}
	wg.Wait()

	accepted := 0
	for i, code := range codes {
		switch code {
		case http.StatusOK:
			accepted++
		case http.StatusPaymentRequired:
			assert.Contains(t, bodies[i], "X402_006")
		default:
			t.Fatalf("unexpected status %d: %s", code, bodies[i])
		}
	}
	assert.Equal(t, 1, accepted, "exactly one request may consume the proof")

	// Exactly one purchase was recorded.
	w := app.do(http.MethodGet, premiumPath, nil, nil)
	require.Equal(t, http.StatusPaymentRequired, w.Code)

	token := app.operatorToken(t)
	w = app.do(http.MethodGet, "/api/v1/dashboard/stats", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_purchases":1`)
}
