// Package bootstrap wires up runtime dependencies shared by the server and
// tooling binaries.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"realme/internal/cache"
	"realme/internal/config"
	"realme/internal/database"
	"realme/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis and runs development-only
// provisioning. The Redis client may be nil if the server is unreachable.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevRootAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development root admin: %w", err)
	}

	return db, r, nil
}

// ensureDevRootAdmin provisions user ID 1 as an administrator with a matching
// profile. Admin rights are granted by row existence, so a fresh database has
// no way to mint its first admin through the API; in development this fills
// the gap.
func ensureDevRootAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapRoot {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.DevRootEmail))
	if email == "" {
		email = "root@realme.local"
	}
	password := cfg.DevRootPassword
	if password == "" {
		return fmt.Errorf("DEV_ROOT_PASSWORD must be set when DEV_BOOTSTRAP_ROOT is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash root password: %w", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		var root models.User
		findErr := tx.First(&root, 1).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			root = models.User{
				ID:       1,
				Email:    email,
				Password: string(hashedPassword),
			}
			if err := tx.Create(&root).Error; err != nil {
				return err
			}
		case findErr != nil:
			return findErr
		default:
			if cfg.DevRootForceCredentials {
				updates := map[string]any{"email": email, "password": string(hashedPassword)}
				if err := tx.Model(&models.User{}).Where("id = ?", 1).Updates(updates).Error; err != nil {
					return err
				}
			}
		}

		var profile models.Profile
		profileErr := tx.First(&profile, 1).Error
		if errors.Is(profileErr, gorm.ErrRecordNotFound) {
			profile = models.Profile{
				ID:         1,
				Email:      email,
				RealName:   "Root Admin",
				IsVerified: true,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		} else if profileErr != nil {
			return profileErr
		}

		var admin models.Admin
		adminErr := tx.Where("user_id = ?", 1).First(&admin).Error
		if errors.Is(adminErr, gorm.ErrRecordNotFound) {
			admin = models.Admin{UserID: 1, CreatedBy: 1, Notes: "development bootstrap"}
			if err := tx.Create(&admin).Error; err != nil {
				return err
			}
		} else if adminErr != nil {
			return adminErr
		}

		// Ensure the users ID sequence is not behind explicit ID insertion.
		// This is PostgreSQL-specific.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(`
				SELECT setval(
					pg_get_serial_sequence('users', 'id'),
					GREATEST((SELECT COALESCE(MAX(id), 1) FROM users), 1),
					true
				)
			`).Error; err != nil {
				return fmt.Errorf("failed to reset users sequence: %w", err)
			}
		}

		return nil
	}); err != nil {
		return err
	}

	log.Printf("development root admin bootstrap ensured for user ID 1 (%s)", email)
	return nil
}
