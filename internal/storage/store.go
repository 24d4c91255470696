package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the record has never been written.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidRecord means the stored value cannot be used as-is.
	ErrInvalidRecord = errors.New("invalid record")
)

// Store is the key-value persistence collaborator. Reads report absence with
// ErrNotFound and unusable data with ErrInvalidRecord.
type Store interface {
	LoadAssignments(ctx context.Context) ([]AssignmentRecord, error)
	SaveAssignments(ctx context.Context, records []AssignmentRecord) error
	LoadActivityLog(ctx context.Context) (ActivityRecord, error)
	SaveActivityLog(ctx context.Context, log ActivityRecord) error
	AppendEvent(ctx context.Context, ev Event) error
	RecentEvents(ctx context.Context, n int) ([]Event, error)
	Close() error
}

// DecodeAssignments parses an assignments record. The value must be a JSON
// list; when non-empty its first element must carry an xp field.
func DecodeAssignments(raw []byte) ([]AssignmentRecord, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: assignments is not a list: %v", ErrInvalidRecord, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: assignments is null", ErrInvalidRecord)
	}
	if len(items) > 0 {
		var first map[string]json.RawMessage
		if err := json.Unmarshal(items[0], &first); err != nil {
			return nil, fmt.Errorf("%w: assignments[0] is not an object", ErrInvalidRecord)
		}
		if _, ok := first["xp"]; !ok {
			return nil, fmt.Errorf("%w: assignments[0] has no xp", ErrInvalidRecord)
		}
	}
	out := make([]AssignmentRecord, 0, len(items))
	for i, item := range items {
		var rec AssignmentRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, fmt.Errorf("%w: assignments[%d]: %v", ErrInvalidRecord, i, err)
		}
		if rec.CompletionDate != nil && *rec.CompletionDate == "" {
			rec.CompletionDate = nil
		}
		out = append(out, rec)
	}
	return out, nil
}

// DecodeActivityLog parses a completed-activities record: a JSON object of
// date key to id list.
func DecodeActivityLog(raw []byte) (ActivityRecord, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("%w: completed_activities is null", ErrInvalidRecord)
	}
	var log ActivityRecord
	if err := json.Unmarshal(raw, &log); err != nil {
		return nil, fmt.Errorf("%w: completed_activities: %v", ErrInvalidRecord, err)
	}
	for k, ids := range log {
		if len(ids) == 0 {
			delete(log, k)
		}
	}
	return log, nil
}

func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return data, nil
}

func encodeActivityLog(log ActivityRecord) ([]byte, error) {
	if log == nil {
		log = ActivityRecord{}
	}
	return encode(log)
}

func encodeAssignments(records []AssignmentRecord) ([]byte, error) {
	if records == nil {
		records = []AssignmentRecord{}
	}
	return encode(records)
}
