package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mnvvr/web3-scrum-poker/db"
	"github.com/mnvvr/web3-scrum-poker/models"
)

// SessionHandler manages session-context records: the display-name, wallet
// and current-room state a browser client saves so it can resume after a
// reload. The domain core never consults these.
type SessionHandler struct {
	store *db.Store
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(store *db.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// SaveSession creates or updates a session context. A request without a token
// mints a new one; the token identifies the context on later requests.
func (h *SessionHandler) SaveSession(c *gin.Context) {
	var req struct {
		Token           string `json:"token"`
		DisplayName     string `json:"displayName"`
		WalletAddress   string `json:"walletAddress"`
		CurrentRoomCode string `json:"currentRoomCode"`
	}

	if err := c.BindJSON(&req); err != nil {
		standardResponse(c, http.StatusBadRequest, "error", nil, "invalid request format")
		return
	}

	if req.CurrentRoomCode != "" && !models.ValidRoomCode(req.CurrentRoomCode) {
		standardResponse(c, http.StatusBadRequest, "error", nil, "invalid room code")
		return
	}

	ctx := h.store.SaveSession(&models.SessionContext{
		Token:           req.Token,
		DisplayName:     req.DisplayName,
		WalletAddress:   req.WalletAddress,
		CurrentRoomCode: req.CurrentRoomCode,
	})

	standardResponse(c, http.StatusOK, "saved", gin.H{"session": ctx}, "")
}

// GetSession returns the session context for a token
func (h *SessionHandler) GetSession(c *gin.Context) {
	ctx, exists := h.store.GetSession(c.Param("token"))
	if !exists {
		standardResponse(c, http.StatusNotFound, "error", nil, models.ErrSessionNotFound.Error())
		return
	}

	standardResponse(c, http.StatusOK, "ok", gin.H{"session": ctx}, "")
}

// DeleteSession clears a session context, the equivalent of the client
// forgetting its stored state on leaving a room
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if !h.store.DeleteSession(c.Param("token")) {
		standardResponse(c, http.StatusNotFound, "error", nil, models.ErrSessionNotFound.Error())
		return
	}

	standardResponse(c, http.StatusOK, "deleted", nil, "")
}
