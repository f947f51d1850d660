package testutil

import (
	"context"
	"fmt"

	"github.com/fitchallenge/backend/config"
	"github.com/fitchallenge/backend/migration"
	"github.com/fitchallenge/backend/pkg/logger"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	Shop       = "fixture.myshopify.com"
	APIKey     = "api-key"
	APISecret  = "api-secret"
	CustomerID = "customer-1"
)

func MockConfigs() config.Configs {
	cfg := config.Default()
	cfg.Env = "test"
	cfg.Database.Driver = "sqlite"
	cfg.Shopify.APIKey = APIKey
	cfg.Shopify.APISecret = APISecret
	cfg.Shopify.AppURL = "https://app.example.com"
	cfg.Session.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Storage.Backend = "s3"
	cfg.Storage.S3.Bucket = "photos"
	cfg.Storage.S3.Region = "us-east-1"
	return cfg
}

// MockContext returns a context with the test configs and an empty in-memory
// database which has all tables.
func MockContext() context.Context {
	return MockContextWithConfigs(MockConfigs())
}

func MockContextWithConfigs(cfg config.Configs) context.Context {
	// Every context has its own database. The database lives as long as one
	// connection is opened, so the pool is limited to one connection.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

// WithShopper returns a context of a verified storefront request.
func WithShopper(ctx context.Context, customerID, email string) context.Context {
	return xcontext.WithRequestShopper(ctx, xcontext.Shopper{
		Shop:       Shop,
		CustomerID: customerID,
		Email:      email,
	})
}
