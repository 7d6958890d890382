package utils

import (
	"context"
	"encoding/json"

	"github.com/code-with-geo/POSServer/config"
)

// ChannelPrefix is shared with the realtime hub, which pattern-subscribes to
// every entity topic under it.
const ChannelPrefix = "pos:events:"

type event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Broadcast publishes a domain event to the entity's Redis topic, from which
// the realtime hub fans it out to connected clients. Publishing happens after
// the state change has been committed and is fire-and-forget: a failed
// broadcast never affects the write.
func Broadcast(entity, name string, data interface{}) {
	if config.RedisClient == nil {
		return
	}
	payload, err := json.Marshal(event{Event: name, Data: data})
	if err != nil {
		return
	}
	go config.RedisClient.Publish(context.Background(), ChannelPrefix+entity, payload)
}
