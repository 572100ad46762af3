// Command billctl runs maintenance tasks against the configured store.
package main

import (
	"fmt"
	"os"

	"github.com/sangkips/billmaster-api/internal/application/service"
	"github.com/sangkips/billmaster-api/internal/config"
	"github.com/sangkips/billmaster-api/internal/domain/enum"
	"github.com/sangkips/billmaster-api/internal/infrastructure/database"
	"github.com/sangkips/billmaster-api/internal/infrastructure/storage"
	"github.com/sangkips/billmaster-api/pkg/logger"
	"github.com/sangkips/billmaster-api/pkg/utils"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "billctl",
		Usage: "billing store maintenance",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"LOG_LEVEL"}},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "create or update the database schema (postgres only)",
				Action: migrate,
			},
			{
				Name:   "seed",
				Usage:  "load the starter catalog and the admin account",
				Action: seed,
			},
			{
				Name:      "import-products",
				Usage:     "create products from an .xlsx sheet",
				ArgsUsage: "FILE",
				Action:    importProducts,
			},
			{
				Name:  "create-user",
				Usage: "open an operator account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"BILLCTL_PASSWORD"}},
					&cli.StringFlag{Name: "role", Value: string(enum.UserRoleCashier)},
				},
				Action: createUser,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "billctl:", err)
		os.Exit(1)
	}
}

type env struct {
	cfg   *config.Config
	log   *zap.Logger
	repos *storage.Repositories
}

func open(c *cli.Context, migrate bool) (*env, error) {
	cfg := config.Load()
	log, err := logger.New(c.String("log-level"), "console", true)
	if err != nil {
		return nil, err
	}
	repos, err := storage.Open(cfg, migrate, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, repos: repos}, nil
}

func (e *env) close() {
	_ = e.repos.Close()
	_ = e.log.Sync()
}

func migrate(c *cli.Context) error {
	e, err := open(c, true)
	if err != nil {
		return err
	}
	defer e.close()

	if e.repos.Driver != config.StorageDriverPostgres {
		e.log.Info("nothing to migrate for this driver", zap.String("driver", e.repos.Driver))
	}
	return nil
}

func seed(c *cli.Context) error {
	e, err := open(c, true)
	if err != nil {
		return err
	}
	defer e.close()

	return database.SeedDefaultData(c.Context, e.repos.Products, e.repos.Users, e.cfg.Admin, e.log)
}

func importProducts(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("import-products needs exactly one FILE argument", 2)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	e, err := open(c, true)
	if err != nil {
		return err
	}
	defer e.close()

	products := service.NewProductService(e.repos.Tx, service.NewStockGuard(), e.repos.Products, e.log)
	result, err := products.ImportProductsFromSheet(c.Context, f)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "rows: %d  created: %d  failed: %d\n", result.TotalRows, result.Successful, result.Failed)
	for _, re := range result.Errors {
		fmt.Fprintf(c.App.Writer, "  row %d %s: %s\n", re.Row, re.Field, re.Message)
	}
	if result.Failed > 0 && result.Successful == 0 {
		return cli.Exit("no products imported", 1)
	}
	return nil
}

func createUser(c *cli.Context) error {
	e, err := open(c, true)
	if err != nil {
		return err
	}
	defer e.close()

	auth := service.NewAuthService(e.repos.Users, utils.NewJWTManager(e.cfg.JWT.Secret, e.cfg.JWT.ExpiryHours), e.log)
	user, err := auth.CreateUser(c.Context, &service.CreateUserInput{
		Name:     c.String("name"),
		Email:    c.String("email"),
		Password: c.String("password"),
		Role:     enum.UserRole(c.String("role")),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "created %s user %s (id %d)\n", user.Role, user.Email, user.ID)
	return nil
}
