package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/config"
	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"
	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/web"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "searchd",
		Short: "Property inventory search service",
		Long:  `Hierarchical property search over state/county inventories with exact and fuzzy identifier resolution`,
	}

	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createPingCmd())
	rootCmd.AddCommand(createSeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
}

// createServeCmd creates the command that runs the HTTP server
func createServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the search HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger()

			db, err := store.Open(cfg.Database.URL, cfg.Database.MaxConnections)
			if err != nil {
				return err
			}
			defer db.Close()

			server := web.NewServer(cfg, store.NewPostgresStore(db), logger)
			return server.Start()
		},
	}
}

// createPingCmd creates a command to test database connectivity
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := store.Open(cfg.Database.URL, cfg.Database.MaxConnections)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Println("Database connection successful!")

			ctx := context.Background()
			ps := store.NewPostgresStore(db)

			containers, err := ps.FindContainers(ctx, store.ContainerFilter{})
			if err != nil {
				return err
			}
			total, err := ps.CountProperties(ctx, store.FilterSpec{})
			if err != nil {
				return err
			}

			fmt.Printf("Containers loaded: %d\n", len(containers))
			fmt.Printf("Properties loaded: %d\n", total)
			return nil
		},
	}
}

// createSeedCmd creates a command that loads a small development dataset
func createSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger()

			db, err := store.Open(cfg.Database.URL, cfg.Database.MaxConnections)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := context.Background()
			ps := store.NewPostgresStore(db)

			if err := ps.EnsureSchema(ctx); err != nil {
				return err
			}

			for _, c := range seedContainers() {
				if err := ps.UpsertContainer(ctx, c); err != nil {
					return err
				}
			}
			props := seedProperties()
			for _, p := range props {
				if err := ps.UpsertProperty(ctx, p); err != nil {
					return err
				}
			}

			logger.Info("seeded sample data", "properties", len(props))
			return nil
		},
	}
}

func seedContainers() []store.GeoContainer {
	md := "md"
	return []store.GeoContainer{
		{ID: "md", Name: "Maryland", Kind: store.KindState},
		{ID: "st-marys", ParentID: &md, Name: "St. Mary's County", Kind: store.KindCounty, LookupMethod: store.LookupParcelID},
		{ID: "calvert", ParentID: &md, Name: "Calvert County", Kind: store.KindCounty, LookupMethod: store.LookupAccountNumber},
	}
}

func seedProperties() []store.Property {
	intPtr := func(v int) *int { return &v }
	floatPtr := func(v float64) *float64 { return &v }

	return []store.Property{
		{
			ID:       "prop-0001",
			ParentID: "st-marys",
			Name:     "46230 Lexwood Dr",
			Status:   store.StatusActive,
			Price:    285000,
			Features: store.Features{
				Bedrooms:     intPtr(3),
				Bathrooms:    floatPtr(2),
				YearBuilt:    intPtr(1994),
				SquareFeet:   floatPtr(1820),
				PropertyType: "single_family",
				Condition:    "good",
			},
			TaxStatus:   store.TaxStatus{AssessedValue: floatPtr(261000)},
			Location:    store.Location{Street: "46230 Lexwood Dr", City: "Lexington Park", ZipCode: "20653"},
			Owner:       store.Owner{Name: "Harold Brooks"},
			Identifiers: store.Identifiers{ParcelID: "08-123456", TaxAccountNumber: "081234560000"},
			UpdatedAt:   time.Now(),
		},
		{
			ID:       "prop-0002",
			ParentID: "calvert",
			Name:     "210 Solomons Island Rd",
			Status:   store.StatusPending,
			Price:    412500,
			Features: store.Features{
				Bedrooms:     intPtr(4),
				Bathrooms:    floatPtr(2.5),
				YearBuilt:    intPtr(2006),
				SquareFeet:   floatPtr(2440),
				PropertyType: "single_family",
				Condition:    "excellent",
			},
			TaxStatus:   store.TaxStatus{AssessedValue: floatPtr(398000), TaxLienStatus: "none"},
			Location:    store.Location{Street: "210 Solomons Island Rd", City: "Prince Frederick", ZipCode: "20678"},
			Owner:       store.Owner{Name: "Mei-Ling Chen"},
			Identifiers: store.Identifiers{TaxAccountNumber: "040987650000"},
			UpdatedAt:   time.Now(),
		},
	}
}
