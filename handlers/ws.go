package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/finflowhq/finflow-api/middleware"
	"github.com/finflowhq/finflow-api/utils"
)

// WSHandler pushes data-change signals to the owning user's open
// sessions so other tabs/devices can refetch.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-alive for cloud hosting that drops idle connections.
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	// Registered once: melody keeps a single handler of each kind, so
	// per-request registration would race between concurrent upgrades.
	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		if id, ok := userID.(string); ok {
			utils.LogWebSocket("connected", id)
		}
	})

	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		if id, ok := userID.(string); ok {
			utils.LogWebSocket("disconnected", id)
		}
	})

	m.HandleError(func(s *melody.Session, err error) {
		utils.SafeError("WebSocket error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades an authenticated request to a websocket. The auth
// middleware has already validated the token (header or ?token=). The
// user id rides in as a session key so the shared connect handler and
// broadcast filter see the right owner for each socket.
func (h *WSHandler) HandleWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	keys := map[string]interface{}{"user_id": userID}
	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		utils.SafeError("Failed to upgrade websocket: %v", err)
	}
}

// BroadcastUpdate signals all of a user's sessions that a resource
// changed. updateType is e.g. "transactions", "budgets", "categories".
func (h *WSHandler) BroadcastUpdate(userID string, updateType string) {
	msg, err := json.Marshal(map[string]string{"type": updateType})
	if err != nil {
		return
	}

	err = h.M.BroadcastFilter(msg, func(s *melody.Session) bool {
		id, exists := s.Get("user_id")
		return exists && id == userID
	})
	if err != nil {
		utils.SafeWarn("Error broadcasting to user %s: %v", utils.MaskID(userID), err)
	}
}
