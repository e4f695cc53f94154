package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Event types recorded by the portal.
const (
	EventPaystubAccess       = "paystub_access"
	EventPaystubGeneration   = "paystub_generation"
	EventDocumentAccess      = "document_access"
	EventVerificationLetter  = "verification_letter"
	EventVerificationDecided = "verification_decided"
	EventPasswordReset       = "password_reset"
)

type Recorder struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Recorder {
	return &Recorder{DB: db}
}

// Record writes one audit row. Metadata is stored as JSON; a nil metadata
// records an empty object.
func (r *Recorder) Record(ctx context.Context, actorID, eventType, entityType, entityID, requestID string, metadata any) error {
	payload := []byte("{}")
	if metadata != nil {
		encoded, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = encoded
	}
	_, err := r.DB.Exec(ctx, `
    INSERT INTO audit_logs (actor_id, event_type, entity_type, entity_id, request_id, metadata)
    VALUES (NULLIF($1,'')::uuid, $2, $3, NULLIF($4,''), NULLIF($5,''), $6)
  `, actorID, eventType, entityType, entityID, requestID, payload)
	return err
}

// List returns recent audit rows for the admin screen, newest first.
type Entry struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId,omitempty"`
	EventType  string          `json:"eventType"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId,omitempty"`
	RequestID  string          `json:"requestId,omitempty"`
	Metadata   json.RawMessage `json:"metadata"`
	CreatedAt  string          `json:"createdAt"`
}

func (r *Recorder) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.DB.Query(ctx, `
    SELECT id, COALESCE(actor_id::text, ''), event_type, entity_type,
           COALESCE(entity_id, ''), COALESCE(request_id, ''), metadata, created_at::text
    FROM audit_logs
    ORDER BY created_at DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.EventType, &e.EntityType, &e.EntityID, &e.RequestID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
