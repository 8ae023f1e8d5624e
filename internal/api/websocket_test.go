package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hoopsim/internal/game"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServerWithHub(t *testing.T) (*httptest.Server, *game.Engine) {
	t.Helper()
	engine := game.NewEngine(1)
	t.Cleanup(func() {
		for _, id := range engine.ListGames() {
			engine.RemoveGame(id)
		}
	})

	hub := NewWebSocketHub()
	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	go hub.Run(stop)
	go hub.StartBroadcastLoop(engine, stop)

	router := NewRouter(RouterConfig{Engine: engine, WSHub: hub, DisableLogging: true})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, engine
}

func TestWebSocketUpgradeSucceedsForExistingGame(t *testing.T) {
	srv, engine := newTestServerWithHub(t)
	_, err := engine.CreateGame("ws1", 1, mustTestTeam("H"), mustTestTeam("A"))
	require.NoError(t, err)
	defer engine.RemoveGame("ws1")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/games/ws1"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
}

func TestWebSocketUpgradeRejectsUnknownGame(t *testing.T) {
	srv, _ := newTestServerWithHub(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/games/nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebSocketBroadcastsSnapshot(t *testing.T) {
	srv, engine := newTestServerWithHub(t)
	_, err := engine.CreateGame("ws2", 2, mustTestTeam("H"), mustTestTeam("A"))
	require.NoError(t, err)
	defer engine.RemoveGame("ws2")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/games/ws2"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"TickNumber\":0")
}

func mustTestTeam(prefix string) *game.Team {
	positions := []game.Position{game.PG, game.SG, game.SF, game.PF, game.C}
	var roster [5]*game.Player
	for i, pos := range positions {
		roster[i] = &game.Player{
			Name: prefix + pos.String(),
			Pos:  pos,
			Shooting: game.ShootingSkills{ThreePoint: 70, MidRange: 70, FreeThrow: 75},
		}
	}
	return game.NewTeam(prefix, roster)
}
