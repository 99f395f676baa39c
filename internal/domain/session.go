package domain

import "time"

// Session is an app session as written by the embedded admin's session storage.
// Offline sessions carry the shop's long-lived Admin API token.
type Session struct {
	ID          string     `json:"id"`
	Shop        string     `json:"shop"`
	State       string     `json:"state"`
	IsOnline    bool       `json:"isOnline"`
	Scope       string     `json:"scope"`
	AccessToken string     `json:"-"`
	Expires     *time.Time `json:"expires,omitempty"`
}

// OfflineSessionID is the id of the offline session of a shop
func OfflineSessionID(shop string) string {
	return "offline_" + shop
}

// IsExpired reports whether the session carries an expiry in the past
func (s *Session) IsExpired(now time.Time) bool {
	return s.Expires != nil && s.Expires.Before(now)
}
