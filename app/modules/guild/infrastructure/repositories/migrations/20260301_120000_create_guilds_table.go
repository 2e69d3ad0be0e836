package migrations

import (
	"context"
	"fmt"

	guilddb "github.com/Black-And-White-Club/xp-bot/app/modules/guild/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating guilds table...")
			if _, err := db.NewCreateTable().Model((*guilddb.Guild)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create guilds table: %w", err)
			}
			fmt.Println("guilds table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping guilds table...")
			if _, err := db.NewDropTable().Model((*guilddb.Guild)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop guilds table: %w", err)
			}
			fmt.Println("guilds table dropped successfully!")
			return nil
		},
	)
}
