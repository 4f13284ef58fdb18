package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
)

// EnsureIndexes creates the indexes both repositories rely on: unique
// usernames, and plate uniqueness among active vehicles only, so a
// soft-deleted vehicle frees its plate.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(userCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	_, err = db.Collection(vehicleCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "plate", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"active": true}),
	})
	if err != nil {
		return fmt.Errorf("vehicles index: %w", err)
	}
	return nil
}

// EnsureDefaultUsers seeds the bootstrap accounts when absent:
// admin/admin123 (ADMIN) and user/user123 (USER).
func EnsureDefaultUsers(ctx context.Context, repo *UserRepository, logger zerolog.Logger) error {
	seeds := []struct {
		username string
		password string
		role     string
	}{
		{"admin", "admin123", domain.RoleAdmin},
		{"user", "user123", domain.RoleUser},
	}

	for _, seed := range seeds {
		exists, err := repo.ExistsByUsername(ctx, seed.username)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}

		now := time.Now().UTC()
		err = repo.Create(ctx, &domain.User{
			Username:     seed.username,
			PasswordHash: string(hash),
			Role:         seed.role,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			// A concurrent instance may have seeded first.
			if errors.Is(err, domain.ErrUserExists) {
				continue
			}
			return err
		}

		logger.Info().Str("username", seed.username).Str("role", seed.role).Msg("seeded default user")
	}
	return nil
}
