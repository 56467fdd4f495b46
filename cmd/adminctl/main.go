package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/docket-service/internal/config"
	"github.com/spec-kit/docket-service/internal/observability"
	"github.com/spec-kit/docket-service/internal/persistence"
	"github.com/spec-kit/docket-service/internal/repository"
	"github.com/spec-kit/docket-service/internal/service"
)

// adminctl creates or resets administrator accounts. Admin credentials are
// maintained from the server host only; the HTTP surface has no write path
// for them.
func main() {
	username := flag.String("username", "", "admin username to create or update")
	password := flag.String("password", "", "new password (hashed with the configured bcrypt cost)")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StudentRepo: repository.NewStudentRepository(pg.PoolHandle()),
		AdminRepo:   repository.NewAdminRepository(pg.PoolHandle()),
	})

	admin, err := authService.SetAdminCredential(ctx, *username, *password)
	if err != nil {
		logger.Fatal("failed to set admin credential", zap.Error(err))
	}

	fmt.Printf("admin %q (id %d) updated\n", admin.Username, admin.ID)
}
