package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/focusguard/core/encoding/json"
	"github.com/focusguard/core/http/api"
	"github.com/focusguard/core/http/mock"

	"github.com/stretchr/testify/require"
)

func TestAbout(t *testing.T) {
	router := mock.DummyEcho()

	handler := NewAbout(AboutConfig{
		ID:        "7c3c6b1c-0ad4-4a7e-9e48-3a8f4d40a5d6",
		Name:      "quiet-river-1234",
		CreatedAt: time.Now().Add(-time.Hour),
	})

	router.Add("GET", "/", handler.About)

	response := mock.Request(t, http.StatusOK, router, "GET", "/", nil)

	mock.Validate(t, &api.About{}, response.Data)

	about := api.About{}
	require.NoError(t, json.Unmarshal(response.Raw, &about))
	require.Equal(t, "focusguard-core", about.App)
	require.Equal(t, "quiet-river-1234", about.Name)
	require.GreaterOrEqual(t, about.Uptime, uint64(3600))
}
