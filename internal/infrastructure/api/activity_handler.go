package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/infrastructure/pubsub"
)

const activityHeartbeat = 25 * time.Second

// activity streams the shop's webhook and theme activity as server-sent events
func (h *Handler) activity(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	shop := domain.GetShopFromContext(ctx)
	sub := h.deps.Activity.Subscribe(ctx, &pubsub.ActivityFilter{Shop: shop})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(activityHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case activity, ok := <-sub.Events:
			if !ok {
				return
			}
			data, err := json.Marshal(activity)
			if err != nil {
				h.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to encode activity")
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", activity.Kind, data)
			flusher.Flush()
		}
	}
}
