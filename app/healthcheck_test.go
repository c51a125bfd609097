package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheckHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	status, _, env := ts.get(t, "/v1/healthcheck")

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	data, ok := env.Data.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "available", data["status"])
	assert.Equal(t, "test", data["environment"])
}
