package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	MB = 1 << 20

	DefaultAPIVersion = "2024-01"
)

// Default returns the configurations used when neither the config file nor
// the environment overrides a value.
func Default() Configs {
	return Configs{
		Env: "local",
		Log: LogConfigs{Level: "info"},
		Database: DatabaseConfigs{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     "3306",
			Database: "challenge",
		},
		ApiServer: APIServerConfigs{
			Port:            "8080",
			MetricsEnabled:  true,
			DefaultLimit:    50,
			MaxLimit:        500,
			OutboundTimeout: 10 * time.Second,
		},
		Shopify: ShopifyConfigs{
			APIVersion:    DefaultAPIVersion,
			Scopes:        "read_customers,read_orders",
			LookupTimeout: 2 * time.Second,
		},
		Session: SessionConfigs{
			Name:   "challenge_session",
			MaxAge: 86400,
		},
		Storage: StorageConfigs{
			Backend:      "s3",
			MaxSize:      5 * MB,
			AllowedTypes: []string{"image/jpeg", "image/png", "image/webp"},
			Expiration:   15 * time.Minute,
			Media: MediaConfigs{
				UploadURL:  "https://api.cloudinary.com/v1_1",
				DeliverURL: "https://res.cloudinary.com",
			},
		},
		Challenge: ChallengeConfigs{
			MinWeight: 50,
			MaxWeight: 1000,
			MaxNotes:  2000,
		},
		Redis: RedisConfigs{
			CustomerCacheTTL: 10 * time.Minute,
		},
		Customization: CustomizationConfigs{
			MaxLabelLength: 200,
		},
	}
}

// Load reads the toml file at path (optional) on top of the defaults, then
// applies the environment variables. A .env file in the working directory is
// loaded first if present.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	_ = godotenv.Load()
	ApplyEnv(&cfg)
	return cfg, nil
}

func ApplyEnv(cfg *Configs) {
	setString(&cfg.Env, "ENV")
	setString(&cfg.Log.Level, "LOG_LEVEL")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.Database, "DB_DATABASE")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.SSLMode, "DB_SSL_MODE")

	setString(&cfg.ApiServer.Host, "API_HOST")
	setString(&cfg.ApiServer.Port, "API_PORT")
	setStrings(&cfg.ApiServer.AllowedOrigins, "API_ALLOWED_ORIGINS")

	setString(&cfg.Shopify.APIKey, "SHOPIFY_API_KEY")
	setString(&cfg.Shopify.APISecret, "SHOPIFY_API_SECRET")
	setString(&cfg.Shopify.Scopes, "SHOPIFY_SCOPES")
	setString(&cfg.Shopify.AppURL, "SHOPIFY_APP_URL")
	setString(&cfg.Shopify.APIVersion, "SHOPIFY_API_VERSION")
	setString(&cfg.Shopify.DefaultShop, "SHOPIFY_DEFAULT_SHOP")

	setString(&cfg.Session.Secret, "SESSION_SECRET")

	setString(&cfg.Storage.Backend, "STORAGE_BACKEND")
	setInt64(&cfg.Storage.MaxSize, "STORAGE_MAX_SIZE")
	setString(&cfg.Storage.S3.Region, "S3_REGION")
	setString(&cfg.Storage.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.Storage.S3.PublicEndpoint, "S3_PUBLIC_ENDPOINT")
	setString(&cfg.Storage.S3.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.Storage.S3.SecretKey, "S3_SECRET_KEY")
	setString(&cfg.Storage.S3.Bucket, "S3_BUCKET")
	setString(&cfg.Storage.Media.CloudName, "MEDIA_CLOUD_NAME")
	setString(&cfg.Storage.Media.APIKey, "MEDIA_API_KEY")
	setString(&cfg.Storage.Media.APISecret, "MEDIA_API_SECRET")
	setString(&cfg.Storage.Media.Folder, "MEDIA_FOLDER")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setStrings(dst *[]string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = nil
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				*dst = append(*dst, s)
			}
		}
	}
}

func setInt64(dst *int64, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}
