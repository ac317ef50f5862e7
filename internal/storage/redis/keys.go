package redis

import (
	"fmt"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
)

// Key prefix for all application data
const keyPrefix = "keepmem"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// pairKey returns the Redis key for a Pair
func pairKey(id model.PairID) string {
	return fmt.Sprintf("%s:pair:%s", keyPrefix, id)
}

// memberIndexKey returns the Redis key for the player_id -> pair_id index
func memberIndexKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:pair_member:%s", keyPrefix, playerID)
}

// pairCodeKey returns the Redis key for a pending pairing code
func pairCodeKey(code model.PairCode) string {
	return fmt.Sprintf("%s:pair_code:%s", keyPrefix, code)
}

// noteKey returns the Redis key for a Note
func noteKey(id model.NoteID) string {
	return fmt.Sprintf("%s:note:%s", keyPrefix, id)
}

// notesForPairIndexKey returns the Redis key for the SET of notes in a pair
func notesForPairIndexKey(pairID model.PairID) string {
	return fmt.Sprintf("%s:idx:notes_for_pair:%s", keyPrefix, pairID)
}

// dateKey returns the Redis key for a SpecialDate
func dateKey(id model.SpecialDateID) string {
	return fmt.Sprintf("%s:date:%s", keyPrefix, id)
}

// datesForPairIndexKey returns the Redis key for the SET of dates in a pair
func datesForPairIndexKey(pairID model.PairID) string {
	return fmt.Sprintf("%s:idx:dates_for_pair:%s", keyPrefix, pairID)
}
