package get_quote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/service/pricing"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

func newHandler() *Handler {
	return NewHandler(pricing.NewService(pricing.Config{
		Currency:   "INR",
		HourlyRate: 150000,
		Packages:   map[string]int64{"podcast": 200000},
		Addons:     map[string]int64{"makeup": 50000, "teleprompter": 30000},
	}), logger.NewNop())
}

func TestHandler_Handle(t *testing.T) {
	w := httptest.NewRecorder()
	newHandler().Handle(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/quote?package=podcast&duration=2h&addons=makeup,teleprompter", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var q pricing.Quote
	require.NoError(t, json.NewDecoder(w.Body).Decode(&q))
	assert.Equal(t, int64(200000), q.Hourly)
	assert.Equal(t, 2, q.Hours)
	assert.Equal(t, int64(2*200000+50000+30000), q.Total)
	assert.Len(t, q.Addons, 2)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing duration", query: "?package=podcast"},
		{name: "bad duration", query: "?duration=soon"},
		{name: "unknown package", query: "?duration=1&package=wedding"},
		{name: "unknown addon", query: "?duration=1&addons=drone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newHandler().Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/quote"+tt.query, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
