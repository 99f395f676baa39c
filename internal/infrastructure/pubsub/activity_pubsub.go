package pubsub

import (
	"context"
	"fmt"
	"sync"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/ports"

	"github.com/rs/zerolog"
)

// ActivityChannel represents a subscription channel
type ActivityChannel struct {
	ID     string
	Filter *ActivityFilter
	Events chan *domain.Activity
	Done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

// ActivityFilter filters activity
type ActivityFilter struct {
	Shop  string               // required shop domain
	Kinds []domain.ActivityKind // empty means all kinds
}

// ActivityPubSub manages live activity subscriptions
type ActivityPubSub struct {
	mu       sync.RWMutex
	channels map[string]*ActivityChannel
	logger   zerolog.Logger
	nextID   int64
	idMu     sync.Mutex
}

var _ ports.ActivityPublisher = (*ActivityPubSub)(nil)

// NewActivityPubSub creates a new activity pub/sub
func NewActivityPubSub(logger zerolog.Logger) *ActivityPubSub {
	return &ActivityPubSub{
		channels: make(map[string]*ActivityChannel),
		logger:   logger,
	}
}

// Subscribe creates a subscription that lives until ctx is cancelled
func (ps *ActivityPubSub) Subscribe(ctx context.Context, filter *ActivityFilter) *ActivityChannel {
	ps.idMu.Lock()
	ps.nextID++
	id := fmt.Sprintf("channel-%d", ps.nextID)
	ps.idMu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)

	channel := &ActivityChannel{
		ID:     id,
		Filter: filter,
		Events: make(chan *domain.Activity, 16),
		Done:   make(chan struct{}),
		ctx:    subCtx,
		cancel: cancel,
	}

	ps.mu.Lock()
	ps.channels[id] = channel
	ps.mu.Unlock()

	ps.logger.Debug().Str("channelId", id).Msg("Activity subscription created")

	go func() {
		<-subCtx.Done()
		ps.Unsubscribe(id)
	}()

	return channel
}

// Unsubscribe removes a subscription channel
func (ps *ActivityPubSub) Unsubscribe(channelID string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	channel, exists := ps.channels[channelID]
	if !exists {
		return
	}

	close(channel.Events)
	close(channel.Done)
	channel.cancel()
	delete(ps.channels, channelID)

	ps.logger.Debug().Str("channelId", channelID).Msg("Activity subscription removed")
}

// Publish delivers activity to every matching subscriber without blocking
func (ps *ActivityPubSub) Publish(activity *domain.Activity) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for _, channel := range ps.channels {
		if !matches(activity, channel.Filter) {
			continue
		}
		select {
		case channel.Events <- activity:
		default:
			ps.logger.Warn().Str("channelId", channel.ID).Str("shop", activity.Shop).Msg("Channel buffer full, dropping activity")
		}
	}
}

// Subscribers returns the number of open subscriptions
func (ps *ActivityPubSub) Subscribers() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.channels)
}

func matches(activity *domain.Activity, filter *ActivityFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Shop != "" && activity.Shop != filter.Shop {
		return false
	}
	if len(filter.Kinds) == 0 {
		return true
	}
	for _, k := range filter.Kinds {
		if activity.Kind == k {
			return true
		}
	}
	return false
}
