package entity

import (
	"time"

	"simple-gifting/internal/domain"
)

// MongoSessionDoc is a session in the layout of the platform's MongoDB session storage
type MongoSessionDoc struct {
	ID          string     `bson:"id"`
	Shop        string     `bson:"shop"`
	State       string     `bson:"state"`
	IsOnline    bool       `bson:"isOnline"`
	Scope       string     `bson:"scope,omitempty"`
	AccessToken string     `bson:"accessToken,omitempty"`
	Expires     *time.Time `bson:"expires,omitempty"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSessionDoc) ToDomain() *domain.Session {
	return &domain.Session{
		ID:          d.ID,
		Shop:        d.Shop,
		State:       d.State,
		IsOnline:    d.IsOnline,
		Scope:       d.Scope,
		AccessToken: d.AccessToken,
		Expires:     d.Expires,
	}
}

// MongoSessionDocFromDomain converts a domain entity to a MongoDB document
func MongoSessionDocFromDomain(s *domain.Session) *MongoSessionDoc {
	return &MongoSessionDoc{
		ID:          s.ID,
		Shop:        s.Shop,
		State:       s.State,
		IsOnline:    s.IsOnline,
		Scope:       s.Scope,
		AccessToken: s.AccessToken,
		Expires:     s.Expires,
	}
}
