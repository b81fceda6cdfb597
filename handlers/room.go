package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/mnvvr/web3-scrum-poker/db"
	"github.com/mnvvr/web3-scrum-poker/models"
)

// standardResponse sends a consistent JSON response
func standardResponse(c *gin.Context, code int, status string, data interface{}, err string) {
	response := gin.H{"status": status}

	if data != nil {
		response["data"] = data
	}

	if err != "" {
		response["error"] = err
	}

	c.JSON(code, response)
}

// statusFor maps a domain error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrRoomNotFound),
		errors.Is(err, models.ErrParticipantNotFound),
		errors.Is(err, models.ErrInvalidStoryIndex),
		errors.Is(err, models.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotCreator):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInvalidRoomName),
		errors.Is(err, models.ErrInvalidCardType),
		errors.Is(err, models.ErrInvalidStoryTitle):
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}

// rejected sends the standard envelope for a failed domain operation
func rejected(c *gin.Context, err error) {
	standardResponse(c, statusFor(err), "error", nil, err.Error())
}

// RoomHandler handles all room-related requests
type RoomHandler struct {
	store   *db.Store
	baseURL string
}

// NewRoomHandler creates a new RoomHandler. baseURL is the externally
// reachable address encoded into join links and QR codes.
func NewRoomHandler(store *db.Store, baseURL string) *RoomHandler {
	return &RoomHandler{
		store:   store,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// roomByCode resolves the :code path parameter, replying 404 on a miss
func (h *RoomHandler) roomByCode(c *gin.Context) (*models.Room, bool) {
	code := c.Param("code")

	room, exists := h.store.GetRoomByCode(code)
	if !exists {
		standardResponse(c, http.StatusNotFound, "error", nil, models.ErrRoomNotFound.Error())
		return nil, false
	}

	return room, true
}

// storyIndex parses the :index path parameter
func storyIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		standardResponse(c, http.StatusBadRequest, "error", nil, "invalid story index")
		return 0, false
	}
	return index, true
}

// CreateRoom handles room creation requests
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req struct {
		Name            string `json:"name" binding:"required"`
		CardType        string `json:"cardType" binding:"required"`
		MaxParticipants int    `json:"maxParticipants"`
		CreatorName     string `json:"creatorName"`
		WalletAddress   string `json:"walletAddress"`
	}

	if err := c.BindJSON(&req); err != nil {
		standardResponse(c, http.StatusBadRequest, "error", nil, "invalid request format")
		return
	}

	creator := models.NewUser(req.CreatorName, req.WalletAddress)

	room, err := h.store.CreateRoom(req.Name, models.CardType(req.CardType), req.MaxParticipants, creator)
	if err != nil {
		rejected(c, err)
		return
	}

	slog.Info("room created", "room", room.ID, "code", room.Code, "cardType", room.CardType)

	standardResponse(c, http.StatusCreated, "created", gin.H{
		"room": room,
		"user": creator,
	}, "")
}

// JoinRoom handles requests to join a room
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var req struct {
		Name          string `json:"name"`
		WalletAddress string `json:"walletAddress"`
	}

	if err := c.BindJSON(&req); err != nil {
		standardResponse(c, http.StatusBadRequest, "error", nil, "invalid request format")
		return
	}

	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	user := models.NewUser(req.Name, req.WalletAddress)
	if err := room.AddParticipant(user); err != nil {
		rejected(c, err)
		return
	}

	slog.Info("participant joined", "room", room.ID, "user", user.ID, "name", user.Name)

	standardResponse(c, http.StatusOK, "joined", gin.H{"user": user}, "")
}

// LeaveRoom handles requests to leave a room
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	userID := c.Query("userID")
	if userID == "" {
		standardResponse(c, http.StatusBadRequest, "error", nil, "invalid user ID")
		return
	}

	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	if err := room.RemoveParticipant(userID); err != nil {
		rejected(c, err)
		return
	}

	// Drop the room once the last participant is gone
	room.Mutex.RLock()
	isEmpty := len(room.Participants) == 0
	room.Mutex.RUnlock()

	if isEmpty {
		h.store.DeleteRoom(room.ID)
		slog.Info("empty room deleted", "room", room.ID)
	}

	standardResponse(c, http.StatusOK, "left", nil, "")
}

// GetRoom handles requests to get room information
func (h *RoomHandler) GetRoom(c *gin.Context) {
	userID := c.Query("userID")
	if userID == "" {
		standardResponse(c, http.StatusBadRequest, "error", nil, "invalid user ID")
		return
	}

	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	if _, exists := room.Participant(userID); !exists {
		standardResponse(c, http.StatusForbidden, "error", nil, models.ErrParticipantNotFound.Error())
		return
	}

	c.JSON(http.StatusOK, room)
}

// AddStory handles requests to add a story to a room
func (h *RoomHandler) AddStory(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	if err := c.BindJSON(&req); err != nil {
		standardResponse(c, http.StatusBadRequest, "error", nil, models.ErrInvalidStoryTitle.Error())
		return
	}

	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	story, err := room.AddStory(req.Title, req.Description)
	if err != nil {
		rejected(c, err)
		return
	}

	standardResponse(c, http.StatusCreated, "story_added", gin.H{"story": story}, "")
}

// UpdateStory handles requests to replace a story's title, description and
// reference in one step
func (h *RoomHandler) UpdateStory(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Reference   string `json:"reference"`
	}

	if err := c.BindJSON(&req); err != nil {
		standardResponse(c, http.StatusBadRequest, "error", nil, models.ErrInvalidStoryTitle.Error())
		return
	}

	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	index, ok := storyIndex(c)
	if !ok {
		return
	}

	if err := room.UpdateStory(index, req.Title, req.Description, req.Reference); err != nil {
		rejected(c, err)
		return
	}

	standardResponse(c, http.StatusOK, "story_updated", nil, "")
}

// AddComment handles requests to comment on a story
func (h *RoomHandler) AddComment(c *gin.Context) {
	var req struct {
		UserID string `json:"userID" binding:"required"`
		Text   string `json:"text" binding:"required"`
	}

	if err := c.BindJSON(&req); err != nil {
		standardResponse(c, http.StatusBadRequest, "error", nil, "invalid request format")
		return
	}

	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	index, ok := storyIndex(c)
	if !ok {
		return
	}

	comment, err := room.AddComment(index, req.UserID, req.Text)
	if err != nil {
		rejected(c, err)
		return
	}

	standardResponse(c, http.StatusCreated, "comment_added", gin.H{"comment": comment}, "")
}

// CastVote handles vote submission for the active story
func (h *RoomHandler) CastVote(c *gin.Context) {
	var req struct {
		UserID string           `json:"userID" binding:"required"`
		Value  models.CardValue `json:"value"`
	}

	if err := c.BindJSON(&req); err != nil {
		standardResponse(c, http.StatusBadRequest, "error", nil, "invalid request format")
		return
	}

	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	if err := room.CastVote(req.UserID, req.Value); err != nil {
		rejected(c, err)
		return
	}

	standardResponse(c, http.StatusOK, "vote_submitted", nil, "")
}

// RevealVotes handles requests to reveal the active story's votes
func (h *RoomHandler) RevealVotes(c *gin.Context) {
	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	userID := c.Query("userID")
	if userID == "" {
		standardResponse(c, http.StatusBadRequest, "error", nil, "invalid user ID")
		return
	}

	if err := room.RevealVotes(userID); err != nil {
		rejected(c, err)
		return
	}

	story, err := room.ActiveStory()
	if err != nil {
		rejected(c, err)
		return
	}

	slog.Info("votes revealed", "room", room.ID, "story", story.ID)

	standardResponse(c, http.StatusOK, "votes_revealed", gin.H{
		"story": story,
		"stats": models.ComputeStats(story.Votes),
	}, "")
}

// ResetVotes handles requests to clear votes and start a new round
func (h *RoomHandler) ResetVotes(c *gin.Context) {
	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	userID := c.Query("userID")
	if userID == "" {
		standardResponse(c, http.StatusBadRequest, "error", nil, "invalid user ID")
		return
	}

	if err := room.ResetVotes(userID); err != nil {
		rejected(c, err)
		return
	}

	slog.Info("voting reset", "room", room.ID)

	standardResponse(c, http.StatusOK, "voting_reset", nil, "")
}

// NextStory handles requests to advance to the next story
func (h *RoomHandler) NextStory(c *gin.Context) {
	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	userID := c.Query("userID")
	if userID == "" {
		standardResponse(c, http.StatusBadRequest, "error", nil, "invalid user ID")
		return
	}

	if err := room.NextStory(userID); err != nil {
		rejected(c, err)
		return
	}

	story, err := room.ActiveStory()
	if err != nil {
		rejected(c, err)
		return
	}

	standardResponse(c, http.StatusOK, "story_advanced", gin.H{"story": story}, "")
}

// EndSession handles requests to end the voting session
func (h *RoomHandler) EndSession(c *gin.Context) {
	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	userID := c.Query("userID")
	if userID == "" {
		standardResponse(c, http.StatusBadRequest, "error", nil, "invalid user ID")
		return
	}

	if err := room.EndSession(userID); err != nil {
		rejected(c, err)
		return
	}

	slog.Info("session ended", "room", room.ID)

	standardResponse(c, http.StatusOK, "session_ended", gin.H{"summary": room.Summary()}, "")
}

// GetStats returns vote statistics for the active story, or for the story
// named by the optional story query parameter
func (h *RoomHandler) GetStats(c *gin.Context) {
	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	var story *models.Story
	var err error
	if raw := c.Query("story"); raw != "" {
		index, convErr := strconv.Atoi(raw)
		if convErr != nil {
			standardResponse(c, http.StatusBadRequest, "error", nil, "invalid story index")
			return
		}
		story, err = room.Story(index)
	} else {
		story, err = room.ActiveStory()
	}
	if err != nil {
		rejected(c, err)
		return
	}

	room.Mutex.RLock()
	stats := models.ComputeStats(story.Votes)
	room.Mutex.RUnlock()

	standardResponse(c, http.StatusOK, "ok", gin.H{"stats": stats}, "")
}

// GetSummary returns the cross-story session summary
func (h *RoomHandler) GetSummary(c *gin.Context) {
	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	standardResponse(c, http.StatusOK, "ok", gin.H{"summary": room.Summary()}, "")
}

// GetJoinQR returns a PNG QR code encoding the room's join URL
func (h *RoomHandler) GetJoinQR(c *gin.Context) {
	room, ok := h.roomByCode(c)
	if !ok {
		return
	}

	png, err := qrcode.Encode(h.baseURL+"/room/"+room.Code, qrcode.Medium, 256)
	if err != nil {
		standardResponse(c, http.StatusInternalServerError, "error", nil, "could not generate QR code")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// GetCardTypes returns the static card-set catalogue
func (h *RoomHandler) GetCardTypes(c *gin.Context) {
	standardResponse(c, http.StatusOK, "ok", gin.H{"cardTypes": models.CardTypes}, "")
}
