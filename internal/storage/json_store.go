package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileState struct {
	Records map[string]json.RawMessage `json:"records"`
	Events  []Event                    `json:"events"`
	NextID  int64                      `json:"nextId"`
}

// JSONStore keeps every record in one JSON file, rewritten atomically on each
// change.
type JSONStore struct {
	filePath string
	mu       sync.RWMutex
	state    fileState
	// corrupt is set when the file on disk could not be decoded. Missing
	// records then report ErrInvalidRecord until they are saved again.
	corrupt error
}

func NewJSONStore(filePath string) (*JSONStore, error) {
	s := &JSONStore{
		filePath: filePath,
		state:    fileState{Records: make(map[string]json.RawMessage)},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) LoadAssignments(ctx context.Context) ([]AssignmentRecord, error) {
	raw, err := s.get(KeyAssignments)
	if err != nil {
		return nil, err
	}
	return DecodeAssignments(raw)
}

func (s *JSONStore) SaveAssignments(ctx context.Context, records []AssignmentRecord) error {
	data, err := encodeAssignments(records)
	if err != nil {
		return err
	}
	return s.put(KeyAssignments, data)
}

func (s *JSONStore) LoadActivityLog(ctx context.Context) (ActivityRecord, error) {
	raw, err := s.get(KeyActivities)
	if err != nil {
		return nil, err
	}
	return DecodeActivityLog(raw)
}

func (s *JSONStore) SaveActivityLog(ctx context.Context, log ActivityRecord) error {
	data, err := encodeActivityLog(log)
	if err != nil {
		return err
	}
	return s.put(KeyActivities, data)
}

func (s *JSONStore) AppendEvent(ctx context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	s.state.NextID++
	ev.ID = s.state.NextID
	s.state.Events = append(s.state.Events, ev)
	return s.persistLocked()
}

// RecentEvents returns up to n events, newest first.
func (s *JSONStore) RecentEvents(ctx context.Context, n int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 {
		return nil, nil
	}
	out := make([]Event, 0, n)
	for i := len(s.state.Events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.state.Events[i])
	}
	return out, nil
}

func (s *JSONStore) get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.state.Records[key]
	if !ok && s.corrupt != nil {
		return nil, fmt.Errorf("%s: %w: %v", key, ErrInvalidRecord, s.corrupt)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return append([]byte(nil), raw...), nil
}

func (s *JSONStore) put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Records[key] = json.RawMessage(value)
	return s.persistLocked()
}

func (s *JSONStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read store: %w", err)
	}
	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		// Keep the unreadable file aside and start empty; the next save
		// rewrites a clean one.
		s.corrupt = fmt.Errorf("decode store %s: %w", s.filePath, err)
		_ = os.WriteFile(s.filePath+".corrupt", data, 0o644)
		return nil
	}
	if state.Records == nil {
		state.Records = make(map[string]json.RawMessage)
	}
	for _, ev := range state.Events {
		if ev.ID > state.NextID {
			state.NextID = ev.ID
		}
	}
	s.state = state
	return nil
}

func (s *JSONStore) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
