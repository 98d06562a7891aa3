package grocer

import "fmt"

// DefaultStorageKey is the key under which the list array is persisted
const DefaultStorageKey = "lists"

// ServiceConfig holds service-level configuration
type ServiceConfig struct {
	// Invite codes
	InviteCodeLength int

	// Input limits
	MaxNameLength  int
	MaxNotesLength int

	// Persistence
	StorageKey string
}

// DefaultServiceConfig provides sensible defaults
var DefaultServiceConfig = ServiceConfig{
	InviteCodeLength: 8,
	MaxNameLength:    100,
	MaxNotesLength:   1000,
	StorageKey:       DefaultStorageKey,
}

// Validate checks that the configuration is usable
func (c ServiceConfig) Validate() error {
	if c.InviteCodeLength < 4 || c.InviteCodeLength > 32 {
		return fmt.Errorf("invite code length must be between 4 and 32, got %d", c.InviteCodeLength)
	}
	if c.MaxNameLength <= 0 {
		return fmt.Errorf("max name length must be positive, got %d", c.MaxNameLength)
	}
	if c.MaxNotesLength <= 0 {
		return fmt.Errorf("max notes length must be positive, got %d", c.MaxNotesLength)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storage key must not be empty")
	}
	return nil
}
