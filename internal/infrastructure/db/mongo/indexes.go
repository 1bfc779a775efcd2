package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates all collection indexes the repositories rely on.
// Called once at startup; index creation is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := NewCampaignRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("campaigns indexes: %w", err)
	}
	if err := NewDonationRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("donations indexes: %w", err)
	}
	return nil
}
