package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/shopstreet/shopstreet/app/configs"
	"github.com/shopstreet/shopstreet/app/db/seeders"
	"github.com/shopstreet/shopstreet/app/models/migrations"
)

func RunCli(env configs.ENV) {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					logrus.Info("migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Load sample catalog data",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := seeders.Run(db); err != nil {
						return err
					}
					logrus.Info("seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate session authentication, encryption and CSRF keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateAndPrintSessionKeys()
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}
