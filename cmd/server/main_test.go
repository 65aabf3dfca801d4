package main

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countdown/internal/config"
	"countdown/internal/logging"
)

func startApp(t *testing.T, backend string, events bool) (*app, *httptest.Server) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Store.Backend = backend
	cfg.Events.Enabled = events

	a, err := newApp(cfg, logging.Discard())
	require.NoError(t, err)
	srv := httptest.NewServer(a.handler)
	t.Cleanup(func() {
		a.stopEvents()
		srv.Close()
		assert.NoError(t, a.store.Close())
	})
	return a, srv
}

func getJSON(t *testing.T, url string, v interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func TestServerEndToEnd(t *testing.T) {
	for _, backend := range []string{config.StoreMemory, config.StoreSQLite} {
		t.Run(backend, func(t *testing.T) {
			_, srv := startApp(t, backend, false)

			var quote map[string]string
			assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/quote", &quote))
			assert.Equal(t, "You can do it!", quote["quote"])

			var timer struct {
				ID    string    `json:"id"`
				Start time.Time `json:"start"`
				End   time.Time `json:"end"`
			}
			require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/timer/1", &timer))
			assert.Equal(t, time.Minute, timer.End.Sub(timer.Start))

			var status struct {
				Seconds int64 `json:"seconds"`
				Minutes int64 `json:"minutes"`
				Hours   int64 `json:"hours"`
			}
			require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/status/"+timer.ID, &status))
			assert.GreaterOrEqual(t, status.Seconds, int64(58))
			assert.LessOrEqual(t, status.Seconds, int64(60))
			assert.Equal(t, int64(0), status.Hours)

			var missing string
			assert.Equal(t, http.StatusNotFound,
				getJSON(t, srv.URL+"/status/00000000-0000-4000-8000-000000000000", &missing))
			assert.Equal(t, "Timer does not exist", missing)

			var health map[string]interface{}
			require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/healthz", &health))
			assert.Equal(t, "ok", health["status"])
			assert.Equal(t, float64(1), health["timers"])
			assert.Equal(t, backend, health["store"])
		})
	}
}

func TestServerEventsDisabled(t *testing.T) {
	a, srv := startApp(t, config.StoreMemory, false)
	assert.Nil(t, a.events)

	resp, err := http.Get(srv.URL + "/events")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServerStreamsTimerCreated(t *testing.T) {
	a, srv := startApp(t, config.StoreMemory, true)

	resp, err := http.Get(srv.URL + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": connected\n", line)
	assert.Eventually(t, func() bool { return a.events.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	var timer map[string]interface{}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/timer/5", &timer))

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			break
		}
	}

	var event struct {
		Type    string                 `json:"type"`
		Payload map[string]interface{} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &event))
	assert.Equal(t, "timer_created", event.Type)
	assert.Equal(t, timer["id"], event.Payload["id"])
}

func TestNewStore(t *testing.T) {
	tests := []struct {
		backend string
		wantErr bool
	}{
		{config.StoreMemory, false},
		{config.StoreSQLite, false},
		{"redis", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			store, err := newStore(tt.backend)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, store.Close())
		})
	}
}

func TestWriteConfig(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "etc", "countdown.yaml")
		cfg := config.DefaultConfig()
		cfg.Server.Addr = "127.0.0.1:4000"
		cfg.Store.Backend = config.StoreSQLite

		got, err := writeConfig(cfg, path)
		require.NoError(t, err)
		assert.Equal(t, path, got)

		loaded, _, err := config.LoadExplicit(got)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:4000", loaded.Server.Addr)
		assert.Equal(t, config.StoreSQLite, loaded.Store.Backend)
		assert.Equal(t, cfg.Server.ShutdownTimeout, loaded.Server.ShutdownTimeout)
	})

	t.Run("user config path", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)

		got, err := writeConfig(config.DefaultConfig(), "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(xdg, "countdown", "config.yaml"), got)
		assert.FileExists(t, got)
	})

	t.Run("no location", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "")

		_, err := writeConfig(config.DefaultConfig(), "")
		assert.Error(t, err)
	})
}
