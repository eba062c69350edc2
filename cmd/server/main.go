package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	pgrepo "github.com/ogurasousui/employee-directory/internal/adapters/repository/postgres"
	sqliterepo "github.com/ogurasousui/employee-directory/internal/adapters/repository/sqlite"
	"github.com/ogurasousui/employee-directory/internal/adapters/rest/handler"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/ogurasousui/employee-directory/internal/platform/config"
	pg "github.com/ogurasousui/employee-directory/internal/platform/db/postgres"
	sqlitedb "github.com/ogurasousui/employee-directory/internal/platform/db/sqlite"
	"github.com/ogurasousui/employee-directory/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env があれば環境変数として読み込みます。無ければ何もしません。
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	svc, cleanup, err := buildService(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}
	defer cleanup()

	if cfg.Database.Seed {
		if err := seedSampleData(ctx, svc); err != nil {
			log.Fatalf("failed to seed sample data: %v", err)
		}
	}

	httpServer := server.New(cfg.Server.ListenAddr, handler.NewRouter(svc))

	log.Printf("employee directory API listening on %s (driver=%s)", cfg.Server.ListenAddr, cfg.Database.Driver)

	if err := httpServer.Run(ctx); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}

func buildService(ctx context.Context, dbCfg config.DatabaseConfig) (employee.UseCase, func(), error) {
	switch dbCfg.Driver {
	case config.DriverSQLite:
		db, err := sqlitedb.Open(ctx, dbCfg.Path)
		if err != nil {
			return nil, nil, err
		}
		repo := sqliterepo.NewEmployeeRepository(db)
		// SQLite は単一コネクション運用のため明示的なトランザクション
		// 管理は行わず、一意制約で整合性を保証します。
		svc := employee.NewService(repo, nil, nil)
		return svc, func() { _ = db.Close() }, nil
	default:
		pool, err := pg.NewPool(ctx, dbCfg)
		if err != nil {
			return nil, nil, err
		}
		repo := pgrepo.NewEmployeeRepository(pool)
		tx := pg.NewTransactionManager(pool)
		svc := employee.NewService(repo, nil, tx)
		return svc, pool.Close, nil
	}
}

// seedSampleData はテーブルが空の場合のみサンプルデータを投入します。
func seedSampleData(ctx context.Context, svc employee.UseCase) error {
	existing, err := svc.ListEmployees(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []employee.CreateEmployeeInput{
		{Name: "John Smith", Email: "john.smith@company.com", Position: "Software Engineer"},
		{Name: "Jane Doe", Email: "jane.doe@company.com", Position: "Product Manager"},
		{Name: "Mike Johnson", Email: "mike.johnson@company.com", Position: "UX Designer"},
		{Name: "Sarah Wilson", Email: "sarah.wilson@company.com", Position: "Data Analyst"},
	}

	for _, sample := range samples {
		if _, err := svc.CreateEmployee(ctx, sample); err != nil {
			return err
		}
	}

	log.Printf("seeded %d sample employees", len(samples))
	return nil
}
