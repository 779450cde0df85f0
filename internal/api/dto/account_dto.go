package dto

import "time"

// LoginRequest payload for admin login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MintTokenRequest payload for issuing a user-scoped token.
type MintTokenRequest struct {
	UserID string `json:"user_id"`
}

// ClaimRequest payload for drawing a credential.
type ClaimRequest struct {
	Category string `json:"category"`
	Service  string `json:"service"`
}

// ClaimResponse carries the drawn credential.
type ClaimResponse struct {
	Category   string `json:"category"`
	Service    string `json:"service"`
	Credential string `json:"credential"`
}

// RestockRequest payload for JSON-body restocks. Multipart uploads carry the
// lines as a .txt file instead.
type RestockRequest struct {
	Lines []string `json:"lines"`
}

// RestockResponse reports how many lines were stored.
type RestockResponse struct {
	Category string `json:"category"`
	Service  string `json:"service"`
	Stored   int    `json:"stored"`
}

// GrantRequest payload for granting category access.
type GrantRequest struct {
	UserID   string `json:"user_id"`
	Category string `json:"category"`
	Time     int64  `json:"time,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// CooldownRequest payload for setting a category cooldown.
type CooldownRequest struct {
	Time int64  `json:"time"`
	Unit string `json:"unit"`
}

// AuditEventResponse is one row of the audit trail listing.
type AuditEventResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	SubjectID string    `json:"subject_id,omitempty"`
	Category  string    `json:"category,omitempty"`
	Service   string    `json:"service,omitempty"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// ClearStockResponse reports how many batches were deleted.
type ClearStockResponse struct {
	Category string `json:"category"`
	Service  string `json:"service,omitempty"`
	Deleted  int    `json:"deleted"`
}
