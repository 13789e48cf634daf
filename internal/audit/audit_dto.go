package audit

import "time"

// QueryFilter narrows audit listings. Zero values mean "no filter".
type QueryFilter struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

type EntryResponse struct {
	ID         string `json:"id"`
	ActorID    string `json:"actor_id"`
	ActorRole  string `json:"actor_role,omitempty"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Details    string `json:"details,omitempty"`
	CreatedAt  string `json:"created_at"`
}
