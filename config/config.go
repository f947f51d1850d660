package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string `toml:"env"`

	Log           LogConfigs           `toml:"log"`
	Database      DatabaseConfigs      `toml:"database"`
	ApiServer     APIServerConfigs     `toml:"api_server"`
	Shopify       ShopifyConfigs       `toml:"shopify"`
	Session       SessionConfigs       `toml:"session"`
	Storage       StorageConfigs       `toml:"storage"`
	Challenge     ChallengeConfigs     `toml:"challenge"`
	Redis         RedisConfigs         `toml:"redis"`
	Customization CustomizationConfigs `toml:"customization"`
}

type LogConfigs struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type DatabaseConfigs struct {
	// Driver is one of mysql, postgres or sqlite.
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	SSLMode  string `toml:"ssl_mode"`

	LogEnabled bool `toml:"log_enabled"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	switch d.Driver {
	case "postgres":
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.Database, sslMode)

	case "sqlite":
		return d.Database

	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User,
			d.Password,
			d.Host,
			d.Port,
			d.Database,
		)
	}
}

type APIServerConfigs struct {
	Host           string   `toml:"host"`
	Port           string   `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
	MetricsEnabled bool     `toml:"metrics_enabled"`

	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`

	// OutboundTimeout bounds every call to the platform and the media host.
	OutboundTimeout time.Duration `toml:"outbound_timeout"`
}

func (c APIServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type ShopifyConfigs struct {
	APIKey     string `toml:"api_key"`
	APISecret  string `toml:"api_secret"`
	Scopes     string `toml:"scopes"`
	AppURL     string `toml:"app_url"`
	APIVersion string `toml:"api_version"`

	// DefaultShop is used only when a storefront request carries no verified
	// shop. Leave empty to reject such requests.
	DefaultShop string `toml:"default_shop"`

	// LookupTimeout bounds the customer lookup made while a shopper waits
	// for a submission response.
	LookupTimeout time.Duration `toml:"lookup_timeout"`
}

type SessionConfigs struct {
	Secret string `toml:"secret"`
	Name   string `toml:"name"`
	MaxAge int    `toml:"max_age"`
}

type StorageConfigs struct {
	// Backend selects the upload adapter, s3 or media.
	Backend      string        `toml:"backend"`
	MaxSize      int64         `toml:"max_size"`
	AllowedTypes []string      `toml:"allowed_types"`
	Expiration   time.Duration `toml:"expiration"`

	S3    S3Configs    `toml:"s3"`
	Media MediaConfigs `toml:"media"`
}

type S3Configs struct {
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	PublicEndpoint string `toml:"public_endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	Bucket         string `toml:"bucket"`
	Prefix         string `toml:"prefix"`
	SSLDisabled    bool   `toml:"ssl_disabled"`
}

type MediaConfigs struct {
	CloudName  string `toml:"cloud_name"`
	APIKey     string `toml:"api_key"`
	APISecret  string `toml:"api_secret"`
	Folder     string `toml:"folder"`
	UploadURL  string `toml:"upload_url"`
	DeliverURL string `toml:"deliver_url"`
}

type ChallengeConfigs struct {
	MinWeight float64 `toml:"min_weight"`
	MaxWeight float64 `toml:"max_weight"`
	MaxNotes  int     `toml:"max_notes"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`

	CustomerCacheTTL time.Duration `toml:"customer_cache_ttl"`
}

type CustomizationConfigs struct {
	MaxLabelLength int `toml:"max_label_length"`
}
