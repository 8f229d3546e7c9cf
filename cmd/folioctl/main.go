package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/folio/internal/config"
	"github.com/example/folio/internal/seed"
	"github.com/example/folio/internal/store"
	"github.com/example/folio/migrations"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:    "folioctl",
		Usage:   "Manage the folio database",
		Version: version,
		Writer:  os.Stdout,
		Commands: []*cli.Command{
			migrateCommand(),
			adminCommand(),
			seedCommand(),
		},
	}
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "folioctl:", err)
		os.Exit(1)
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or roll back schema migrations",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					if err := migrations.Up(cfg.DBDriver, cfg.DBDSN); err != nil {
						return err
					}
					fmt.Fprintln(cmd.Root().Writer, "migrations applied")
					return nil
				},
			},
			{
				Name:  "down",
				Usage: "Roll back every migration",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "confirm dropping all tables"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if !cmd.Bool("yes") {
						return cli.Exit("refusing to drop all tables without --yes", 2)
					}
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					if err := migrations.Down(cfg.DBDriver, cfg.DBDSN); err != nil {
						return err
					}
					fmt.Fprintln(cmd.Root().Writer, "migrations rolled back")
					return nil
				},
			},
		},
	}
}

func adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Manage admin accounts",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create an admin account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Usage: "defaults to $FOLIO_ADMIN_PASSWORD", Sources: cli.EnvVars("FOLIO_ADMIN_PASSWORD")},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					password := cmd.String("password")
					if len(password) < 8 {
						return errors.New("password must be at least 8 characters")
					}
					return withStore(ctx, func(st *store.Store) error {
						hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
						if err != nil {
							return fmt.Errorf("hash password: %w", err)
						}
						admin, err := st.CreateAdmin(ctx, cmd.String("username"), cmd.String("email"), string(hash))
						if errors.Is(err, store.ErrDuplicate) {
							return fmt.Errorf("admin %q already exists", strings.TrimSpace(cmd.String("username")))
						}
						if err != nil {
							return err
						}
						fmt.Fprintf(cmd.Root().Writer, "created admin %s (id %d)\n", admin.Username, admin.ID)
						return nil
					})
				},
			},
			{
				Name:  "passwd",
				Usage: "Reset an admin password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Sources: cli.EnvVars("FOLIO_ADMIN_PASSWORD")},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					password := cmd.String("password")
					if len(password) < 8 {
						return errors.New("password must be at least 8 characters")
					}
					return withStore(ctx, func(st *store.Store) error {
						admin, err := st.GetAdminByUsername(ctx, cmd.String("username"))
						if err != nil {
							return fmt.Errorf("find admin: %w", err)
						}
						hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
						if err != nil {
							return fmt.Errorf("hash password: %w", err)
						}
						if err := st.SetAdminPassword(ctx, admin.ID, string(hash)); err != nil {
							return err
						}
						fmt.Fprintf(cmd.Root().Writer, "password updated for %s\n", admin.Username)
						return nil
					})
				},
			},
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load sample portfolio content",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "YAML seed document (defaults to the built-in sample)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var data []byte
			if path := cmd.String("file"); path != "" {
				b, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read seed file: %w", err)
				}
				data = b
			}
			doc, err := seed.Parse(data)
			if err != nil {
				return err
			}
			return withStore(ctx, func(st *store.Store) error {
				res, err := seed.Load(ctx, st, doc)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.Root().Writer, "seeded %d rows (personal info %d, skills %d, projects %d, experiences %d, education %d)\n",
					res.Total(), res.PersonalInfo, res.Skills, res.Projects, res.Experiences, res.Education)
				return nil
			})
		},
	}
}

// withStore migrates the configured database, then opens it for fn.
func withStore(ctx context.Context, fn func(*store.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := migrations.Up(cfg.DBDriver, cfg.DBDSN); err != nil {
		return err
	}
	st, err := store.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Ping(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return fn(st)
}
