package portrait

import (
	"fmt"
	"sync"
	"time"
)

// MemStore - in-memory tables for portraits and users. Identifier assignment
// and insertion happen under one mutex so concurrent creates never share an
// id or expose a half-written record. Everything is lost on restart and the
// counters reset to 1.
type MemStore struct {
	mutex          sync.Mutex
	portraits      map[int]*Portrait
	users          map[int]*User
	nextPortraitID int
	nextUserID     int
}

func NewMemStore() *MemStore {
	return &MemStore{
		portraits:      make(map[int]*Portrait),
		users:          make(map[int]*User),
		nextPortraitID: 1,
		nextUserID:     1,
	}
}

// CreatePortrait - assign the next sequential id and creation timestamp,
// insert, and return the stored record
func (s *MemStore) CreatePortrait(insert InsertPortrait) *Portrait {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := s.nextPortraitID
	s.nextPortraitID++

	record := &Portrait{
		ID:                id,
		OriginalImageURL:  insert.OriginalImageURL,
		GeneratedImageURL: insert.GeneratedImageURL,
		YearWar:           insert.YearWar,
		Side:              insert.Side,
		Rank:              insert.Rank,
		Branch:            insert.Branch,
		ExtraDetails:      insert.ExtraDetails,
		ArtStyle:          insert.ArtStyle,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
	}
	s.portraits[id] = record

	// Hand back a copy so the stored record stays immutable
	result := *record
	return &result
}

// GetPortrait - look up a portrait by id
func (s *MemStore) GetPortrait(id int) (*Portrait, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.portraits[id]
	if !exists {
		return nil, NewError(KindNotFound, fmt.Sprintf("Portrait %d not found", id), nil)
	}

	result := *record
	return &result, nil
}

// PortraitCount - number of stored portraits
func (s *MemStore) PortraitCount() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.portraits)
}

// CreateUser - assign the next sequential user id and insert
func (s *MemStore) CreateUser(insert InsertUser) *User {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := s.nextUserID
	s.nextUserID++

	record := &User{
		ID:       id,
		Username: insert.Username,
		Password: insert.Password,
	}
	s.users[id] = record

	result := *record
	return &result
}

// GetUser - look up a user by id
func (s *MemStore) GetUser(id int) (*User, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.users[id]
	if !exists {
		return nil, false
	}
	result := *record
	return &result, true
}

// GetUserByUsername - look up a user by username
func (s *MemStore) GetUserByUsername(username string) (*User, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, record := range s.users {
		if record.Username == username {
			result := *record
			return &result, true
		}
	}
	return nil, false
}
