package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/rahayucraft/studio-management/internal/storage"
	"github.com/rahayucraft/studio-management/internal/store"
	"github.com/rahayucraft/studio-management/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed durable storage with the default dataset",
	Long:  `Writes the default craft-studio dataset into the configured storage backend and assigns every account a login password. With --clear, existing collections are overwritten; without it, stored collections are kept and only missing ones are seeded.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init("", cfg.Observability.Logging.Level)
		lg := logger.LoggerWrapper()

		repo, err := initRepository(cfg.Storage)
		if err != nil {
			log.Fatalf("failed to init storage: %v", err)
		}
		defer repo.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var st *store.Store
		if clearData {
			st = store.NewFromDefaults(repo, lg)
		} else {
			st, err = store.New(ctx, repo, lg)
			if err != nil {
				log.Fatalf("failed to hydrate store: %v", err)
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		var seeded []string
		st.Update(ctx, func(s *store.State) []storage.Key {
			for i := range s.Users {
				if s.Users[i].PasswordHash == "" || clearData {
					s.Users[i].PasswordHash = string(hash)
					seeded = append(seeded, s.Users[i].Email)
				}
			}
			return nil
		})

		st.PersistAll(ctx)

		for _, email := range seeded {
			fmt.Println("Seeded account:", email)
		}
		fmt.Printf("Seeding complete (%d account(s) given the seed password)\n", len(seeded))
	},
}
