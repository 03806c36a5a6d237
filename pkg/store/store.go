// Package store persists interview sessions as one JSON file per session.
// It is the durable hand-off between the interview flow (which writes
// sessions) and the report generator (which reads them back).
package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobmate/reportgen/pkg/errors"
	"github.com/jobmate/reportgen/pkg/session"
)

// Store is a thread-safe session store backed by a directory of JSON files.
// Sessions are held in memory and written through on every Save.
type Store struct {
	mu       sync.RWMutex
	dir      string
	sessions map[string]*session.Session
}

// Summary is the listing shape: enough to pick a session without loading
// its full feedback.
type Summary struct {
	ID            string    `json:"sessionId"`
	Title         string    `json:"title"`
	Timestamp     time.Time `json:"timestamp"`
	InterviewType string    `json:"interviewType"`
	Questions     int       `json:"questions"`
	Answered      int       `json:"answered"`
}

// New opens a store rooted at dir, creating the directory if needed and
// loading every existing session file. A corrupted file is logged and
// skipped; it never prevents the store from opening.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.WrapStorage(err, errors.ErrStorageDirFailed, "cannot create data directory").
			WithContext("dir", dir)
	}

	s := &Store{
		dir:      dir,
		sessions: make(map[string]*session.Session),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) load() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return errors.WrapStorage(err, errors.ErrStorageReadFailed, "cannot read data directory").
			WithContext("dir", s.dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[store] skipping unreadable %s: %v", entry.Name(), err)
			continue
		}

		var sess session.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			log.Printf("[store] skipping corrupted %s: %v", entry.Name(), err)
			continue
		}
		if sess.ID == "" {
			log.Printf("[store] skipping %s: no session id", entry.Name())
			continue
		}

		s.sessions[sess.ID] = &sess
	}
	return nil
}

// Save persists a session, assigning an ID when missing. The file is
// written to a temp name and renamed so readers never see a partial write.
func (s *Store) Save(sess *session.Session) error {
	if sess == nil {
		return errors.NewStorageError(errors.ErrStorageWriteFailed, "nil session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.Timestamp.IsZero() {
		sess.Timestamp = time.Now().UTC()
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return errors.WrapStorage(err, errors.ErrStorageWriteFailed, "cannot encode session").
			WithContext("session", sess.ID)
	}

	path := s.path(sess.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.WrapStorage(err, errors.ErrStorageWriteFailed, "cannot write session file").
			WithContext("path", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.WrapStorage(err, errors.ErrStorageWriteFailed, "cannot finalize session file").
			WithContext("path", path)
	}

	copied := *sess
	s.sessions[sess.ID] = &copied
	return nil
}

// Get returns a copy of the session with the given ID.
func (s *Store) Get(id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.NewSessionError(errors.ErrSessionNotFound, "session not found").
			WithContext("session", id).
			WithSuggestion("list sessions to see available ids")
	}

	copied := *sess
	return &copied, nil
}

// List returns session summaries, newest first.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]Summary, 0, len(s.sessions))
	for _, sess := range s.sessions {
		summaries = append(summaries, Summary{
			ID:            sess.ID,
			Title:         sess.Title(),
			Timestamp:     sess.Timestamp,
			InterviewType: sess.InterviewType,
			Questions:     len(sess.Questions),
			Answered:      len(sess.Feedback),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Timestamp.Equal(summaries[j].Timestamp) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].Timestamp.After(summaries[j].Timestamp)
	})
	return summaries
}

// Count returns the number of stored sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Delete removes a session and its file.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return errors.NewSessionError(errors.ErrSessionNotFound, "session not found").
			WithContext("session", id)
	}

	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return errors.WrapStorage(err, errors.ErrStorageWriteFailed, "cannot delete session file").
			WithContext("session", id)
	}

	delete(s.sessions, id)
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}
