package events

import (
	"encoding/json"
	"time"
)

// Event types published on the SSE stream. The dashboard refreshes its
// project list and vacancy table off these.
const (
	TypePing               = "ping"
	TypeProjectCreated     = "project_created"
	TypeProjectUpdated     = "project_updated"
	TypeProjectDeleted     = "project_deleted"
	TypeCollectionStarted  = "collection_started"
	TypeCollectionProgress = "collection_progress"
	TypeCollectionFinished = "collection_finished"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
