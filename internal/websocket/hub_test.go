package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"swiftpost/internal/logger"
	"swiftpost/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(logger.NewNop(), nil)
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws", hub.ServeWs)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestHub_ReplaysLastSessionToNewClient(t *testing.T) {
	hub, url := startHub(t)

	hub.Publish(Event{Type: EventSession, User: &model.Usuario{IDUsuario: "u1", NombreUsuario: "admin"}})

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	ev := readEvent(t, conn)
	assert.Equal(t, EventSession, ev.Type)
	require.NotNil(t, ev.User)
	assert.Equal(t, "u1", ev.User.IDUsuario)
}

func TestHub_NavigateReachesConnectedClient(t *testing.T) {
	hub, url := startHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.clientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Navigate("/login", map[string]string{"returnUrl": "/inicio"})
	ev := readEvent(t, conn)

	assert.Equal(t, EventNavigate, ev.Type)
	assert.Equal(t, "/login", ev.Path)
	assert.Equal(t, "/inicio", ev.Query["returnUrl"])
}

func TestHub_RejectsUnknownOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(logger.NewNop(), []string{"http://localhost:4200"})
	go hub.Run(ctx)
	r := gin.New()
	r.GET("/ws", hub.ServeWs)
	srv := httptest.NewServer(r)
	defer srv.Close()

	header := map[string][]string{"Origin": {"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 403, resp.StatusCode)
}
