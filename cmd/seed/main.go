// Command seed fills the fleet_desk database with generated technicians,
// vehicles and package bookings, and makes sure an admin account exists.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/jaswdr/faker"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"fleet_desk/internal/config"
	"fleet_desk/internal/demo"
	"fleet_desk/internal/logger"
	"fleet_desk/internal/models"
	"fleet_desk/internal/repository"
)

func main() {
	var (
		records       int
		seed          int64
		adminUser     string
		adminPassword string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo records into the configured Postgres database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.SetupConsole(cmd.ErrOrStderr(), cfg.LogLevel)

			db, err := config.InitDB(cfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if adminUser != "" {
				if err := ensureAdmin(ctx, repository.NewUserRepository(db), adminUser, adminPassword); err != nil {
					return err
				}
			}

			fake := faker.New()
			if seed != 0 {
				fake = faker.NewWithSeed(rand.NewSource(seed))
			}
			set := demo.NewGenerator(fake, time.Now()).Generate(records)

			technicians := repository.NewTechnicianRepository(db)
			vehicles := repository.NewVehicleRepository(db)
			bookings := repository.NewPackageBookingRepository(db)

			bar := progressbar.Default(int64(3*records), "seeding")
			var skipped int
			insert := func(err error) error {
				bar.Add(1)
				if errors.Is(err, repository.ErrConflict) {
					skipped++
					return nil
				}
				return err
			}
			for i := range set.Technicians {
				if err := insert(technicians.Create(ctx, &set.Technicians[i])); err != nil {
					return err
				}
			}
			for i := range set.Vehicles {
				if err := insert(vehicles.Create(ctx, &set.Vehicles[i])); err != nil {
					return err
				}
			}
			for i := range set.Bookings {
				if err := insert(bookings.Create(ctx, &set.Bookings[i])); err != nil {
					return err
				}
			}
			bar.Finish()
			logrus.WithFields(logrus.Fields{"records": records, "skipped": skipped}).Info("Seeding finished")
			fmt.Fprintf(cmd.OutOrStdout(), "\nInserted %d records (%d duplicates skipped)\n", 3*records-skipped, skipped)
			return nil
		},
	}
	cmd.Flags().IntVarP(&records, "records", "n", 50, "records of each kind")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 for a fresh one")
	cmd.Flags().StringVar(&adminUser, "admin-user", os.Getenv("ADMIN_USER"), "admin account to create if missing")
	cmd.Flags().StringVar(&adminPassword, "admin-password", os.Getenv("ADMIN_PASSWORD"), "password for a newly created admin")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func ensureAdmin(ctx context.Context, users *repository.UserRepository, name, password string) error {
	_, err := users.FindByUserName(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if password == "" {
		return fmt.Errorf("admin %q does not exist and no password was given", name)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := users.Create(ctx, &models.User{UserName: name, Password: string(hash), Role: models.RoleAdmin}); err != nil {
		return err
	}
	logrus.WithField("userName", name).Info("Created admin account")
	return nil
}
