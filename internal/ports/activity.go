package ports

import "simple-gifting/internal/domain"

// ActivityPublisher fans activity out to live subscribers
type ActivityPublisher interface {
	Publish(activity *domain.Activity)
}
