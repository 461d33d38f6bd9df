package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/fitload/internal/domain"
	"github.com/phrazzld/fitload/internal/store"
)

// ProfileStore keeps body profiles in a key-value store under
// "profile:<userID>". It implements ProfileProvider.
type ProfileStore struct {
	kv store.KeyValueStore
}

// Ensure ProfileStore implements ProfileProvider interface
var _ ProfileProvider = (*ProfileStore)(nil)

// NewProfileStore creates a ProfileStore. It panics if kv is nil.
func NewProfileStore(kv store.KeyValueStore) *ProfileStore {
	if kv == nil {
		panic("kv cannot be nil")
	}
	return &ProfileStore{kv: kv}
}

func profileKey(userID uuid.UUID) string {
	return "profile:" + userID.String()
}

// GetProfile implements ProfileProvider.
func (s *ProfileStore) GetProfile(ctx context.Context, userID uuid.UUID) (domain.UserProfile, error) {
	raw, err := s.kv.Get(ctx, profileKey(userID))
	if store.IsNotFoundError(err) {
		return domain.UserProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.UserProfile{}, NewServiceError("profile", "get_profile", "failed to read profile", err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return domain.UserProfile{}, NewServiceError("profile", "get_profile", "stored profile is unreadable", err)
	}
	return profile, nil
}

// SaveProfile validates and stores the user's profile, replacing any previous one.
func (s *ProfileStore) SaveProfile(ctx context.Context, userID uuid.UUID, profile domain.UserProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.kv.Set(ctx, profileKey(userID), raw); err != nil {
		return NewServiceError("profile", "save_profile", "failed to write profile", err)
	}
	return nil
}
