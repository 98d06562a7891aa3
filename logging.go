package grocer

import (
	"github.com/rs/zerolog"
)

// Log event names
const (
	// List-level events
	EventListCreated       = "list_created"
	EventListRenamed       = "list_renamed"
	EventListDeleted       = "list_deleted"
	EventListJoinRequested = "list_join_requested"
	EventInviteIssued      = "invite_issued"

	// Item-level events
	EventItemAdded   = "item_added"
	EventItemUpdated = "item_updated"
	EventItemDeleted = "item_deleted"

	// Tag-level events
	EventTagCreated = "tag_created"
	EventTagRemoved = "tag_removed"

	// Persistence events
	EventPersistenceError = "persistence_error"
)

// LogListCreated logs when a list is created
func LogListCreated(logger zerolog.Logger, listID int, name string) {
	logger.Info().
		Str("event", EventListCreated).
		Int("list_id", listID).
		Str("list_name", name).
		Msg("List created")
}

// LogListRenamed logs when a list is renamed
func LogListRenamed(logger zerolog.Logger, listID int, oldName, newName string) {
	logger.Info().
		Str("event", EventListRenamed).
		Int("list_id", listID).
		Str("old_name", oldName).
		Str("new_name", newName).
		Msg("List renamed")
}

// LogListDeleted logs when a list is deleted
func LogListDeleted(logger zerolog.Logger, listID int) {
	logger.Info().
		Str("event", EventListDeleted).
		Int("list_id", listID).
		Msg("List deleted")
}

// LogListJoinRequested logs an attempt to join a shared list
func LogListJoinRequested(logger zerolog.Logger, inviteCode string) {
	logger.Warn().
		Str("event", EventListJoinRequested).
		Str("invite_code", inviteCode).
		Msg("Join requested, invite redemption is not available")
}

// LogInviteIssued logs when an invite code is handed out
func LogInviteIssued(logger zerolog.Logger, listID int, generated bool) {
	logger.Info().
		Str("event", EventInviteIssued).
		Int("list_id", listID).
		Bool("generated", generated).
		Msg("Invite code issued")
}

// LogItemAdded logs when an item is added to a list
func LogItemAdded(logger zerolog.Logger, listID, itemID int, name string) {
	logger.Info().
		Str("event", EventItemAdded).
		Int("list_id", listID).
		Int("item_id", itemID).
		Str("item_name", name).
		Msg("Item added")
}

// LogItemUpdated logs when an item is edited
func LogItemUpdated(logger zerolog.Logger, listID, itemID int) {
	logger.Info().
		Str("event", EventItemUpdated).
		Int("list_id", listID).
		Int("item_id", itemID).
		Msg("Item updated")
}

// LogItemDeleted logs when an item is removed
func LogItemDeleted(logger zerolog.Logger, listID, itemID int) {
	logger.Info().
		Str("event", EventItemDeleted).
		Int("list_id", listID).
		Int("item_id", itemID).
		Msg("Item deleted")
}

// LogTagCreated logs when a new tag is added to a list
func LogTagCreated(logger zerolog.Logger, listID int, tag ListTag) {
	logger.Debug().
		Str("event", EventTagCreated).
		Int("list_id", listID).
		Int("tag_id", tag.ID).
		Str("tag_name", tag.Name).
		Str("colour", tag.Colour).
		Msg("Tag created")
}

// LogTagRemoved logs when a tag is removed from a list
func LogTagRemoved(logger zerolog.Logger, listID, tagID, affectedItems int) {
	logger.Info().
		Str("event", EventTagRemoved).
		Int("list_id", listID).
		Int("tag_id", tagID).
		Int("affected_items", affectedItems).
		Msg("Tag removed")
}

// LogPersistenceError logs errors during persistence operations
func LogPersistenceError(logger zerolog.Logger, key, operation string, err error) {
	logger.Error().
		Str("event", EventPersistenceError).
		Str("key", key).
		Str("operation", operation).
		Err(err).
		Msg("Persistence error")
}

// ListLogger creates a logger enriched with list context
func ListLogger(baseLogger zerolog.Logger, listID int) zerolog.Logger {
	return baseLogger.With().
		Int("list_id", listID).
		Logger()
}
