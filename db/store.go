package db

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mnvvr/web3-scrum-poker/models"
)

// codeRetries bounds the room-code collision loop. With ~2x10^9 possible
// codes a single retry is already rare.
const codeRetries = 10

// Store is a simple in-memory store for rooms and session contexts
type Store struct {
	rooms    map[string]*models.Room
	codes    map[string]string
	sessions map[string]*models.SessionContext
	mutex    sync.RWMutex
}

// NewStore creates a new in-memory store
func NewStore() *Store {
	return &Store{
		rooms:    make(map[string]*models.Room),
		codes:    make(map[string]string),
		sessions: make(map[string]*models.SessionContext),
	}
}

// CreateRoom creates a new room with the given creator, regenerating the room
// code until it does not collide with an active room.
func (s *Store) CreateRoom(name string, cardType models.CardType, maxParticipants int, creator *models.User) (*models.Room, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, err := models.NewRoom(name, cardType, maxParticipants, creator)
	if err != nil {
		return nil, err
	}

	for i := 0; i < codeRetries; i++ {
		if _, taken := s.codes[room.Code]; !taken {
			break
		}
		room.Code = models.GenerateRoomCode()
	}

	s.rooms[room.ID] = room
	s.codes[room.Code] = room.ID

	return room, nil
}

// GetRoom returns a room by ID
func (s *Store) GetRoom(roomID string) (*models.Room, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	room, exists := s.rooms[roomID]
	return room, exists
}

// GetRoomByCode returns a room by its join code
func (s *Store) GetRoomByCode(code string) (*models.Room, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	roomID, exists := s.codes[code]
	if !exists {
		return nil, false
	}
	room, exists := s.rooms[roomID]
	return room, exists
}

// DeleteRoom removes a room from the store
func (s *Store) DeleteRoom(roomID string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	room, exists := s.rooms[roomID]
	if !exists {
		return false
	}

	delete(s.codes, room.Code)
	delete(s.rooms, roomID)
	return true
}

// CleanupEmptyRooms removes rooms that have no participants
func (s *Store) CleanupEmptyRooms() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	count := 0
	for id, room := range s.rooms {
		room.Mutex.RLock()
		isEmpty := len(room.Participants) == 0
		room.Mutex.RUnlock()

		if isEmpty {
			delete(s.codes, room.Code)
			delete(s.rooms, id)
			count++
		}
	}

	return count
}

// SaveSession stores a session context, minting a token if the context does
// not carry one yet
func (s *Store) SaveSession(ctx *models.SessionContext) *models.SessionContext {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if ctx.Token == "" {
		ctx.Token = uuid.New().String()
	}
	ctx.UpdatedAt = time.Now()
	s.sessions[ctx.Token] = ctx

	return ctx
}

// GetSession returns the session context for a token
func (s *Store) GetSession(token string) (*models.SessionContext, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	ctx, exists := s.sessions[token]
	return ctx, exists
}

// DeleteSession removes a session context
func (s *Store) DeleteSession(token string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.sessions[token]; !exists {
		return false
	}

	delete(s.sessions, token)
	return true
}
