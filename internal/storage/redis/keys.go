package redis

import (
	"fmt"

	"github.com/libroquest/gamebook-server/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "gbook"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// documentIndexKey returns the Redis key for the document -> player_id index
func documentIndexKey(document string) string {
	return fmt.Sprintf("%s:idx:document:%s", keyPrefix, document)
}

// sessionKey returns the Redis key for a Session
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}

// itemKey returns the Redis key for a catalog Item
func itemKey(id model.ItemID) string {
	return fmt.Sprintf("%s:item:%s", keyPrefix, id)
}

// itemNameIndexKey returns the Redis key for the item name -> item_id index
func itemNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:item_name:%s", keyPrefix, name)
}

// earnedItemsKey returns the Redis key for the SET of items a player earned
func earnedItemsKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:earned:%s", keyPrefix, playerID)
}

// timeRecordsKey returns the Redis key for the LIST of a player's time rows
func timeRecordsKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:time:%s", keyPrefix, playerID)
}
