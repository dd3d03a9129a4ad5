package redis

import (
	"fmt"
	"strings"

	"github.com/soltomm/PinoGPT/internal/model"
)

// Key prefix for all balancer data
const keyPrefix = "balancer"

// playerKey returns the Redis key for a player. Names are keyed
// lowercased so lookups stay case-insensitive.
func playerKey(name string) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, strings.ToLower(strings.TrimSpace(name)))
}

// playerOrderKey returns the Redis key for the LIST of player keys in
// insertion order
func playerOrderKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// pendingGameKey returns the Redis key for a pending game
func pendingGameKey(id model.GameID) string {
	return fmt.Sprintf("%s:pending:%s", keyPrefix, id)
}

// pendingOrderKey returns the Redis key for the LIST of pending game
// IDs in creation order
func pendingOrderKey() string {
	return fmt.Sprintf("%s:idx:pending", keyPrefix)
}

// historyGameKey returns the Redis key for a completed game
func historyGameKey(id model.GameID) string {
	return fmt.Sprintf("%s:history:%s", keyPrefix, id)
}

// historyOrderKey returns the Redis key for the LIST of history game
// IDs in completion order
func historyOrderKey() string {
	return fmt.Sprintf("%s:idx:history", keyPrefix)
}
