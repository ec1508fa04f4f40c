package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflowhq/finflow-api/middleware"
	"github.com/finflowhq/finflow-api/utils"
)

// wsTestServer wires /ws behind the auth middleware, the same way the
// route group does.
func wsTestServer(t *testing.T) (*httptest.Server, *WSHandler) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ws := NewWSHandler()

	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/ws", ws.HandleWS)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, ws
}

func dialWS(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHandleWSRejectsUnauthenticated(t *testing.T) {
	srv, _ := wsTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)

	require.Error(t, err)
	require.Nil(t, conn)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Each session must carry its own user's id, so a refresh signal goes
// only to the owner's sockets even with several users connected.
func TestBroadcastUpdateReachesOwnerOnly(t *testing.T) {
	srv, ws := wsTestServer(t)

	ownerToken, err := utils.GenerateAccessToken("owner-1", "owner@example.com")
	require.NoError(t, err)
	otherToken, err := utils.GenerateAccessToken("other-2", "other@example.com")
	require.NoError(t, err)

	owner := dialWS(t, srv, ownerToken)
	other := dialWS(t, srv, otherToken)

	// Let both sessions register with the hub.
	time.Sleep(100 * time.Millisecond)

	ws.BroadcastUpdate("owner-1", "transactions")

	require.NoError(t, owner.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := owner.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"transactions"}`, string(msg))

	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}
