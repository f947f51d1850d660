package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fitchallenge/backend/config"
	"github.com/fitchallenge/backend/internal/domain"
	"github.com/fitchallenge/backend/internal/repository"
	"github.com/fitchallenge/backend/pkg/api/shopify"
	"github.com/fitchallenge/backend/pkg/authenticator"
	"github.com/fitchallenge/backend/pkg/logger"
	"github.com/fitchallenge/backend/pkg/router"
	"github.com/fitchallenge/backend/pkg/storage"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/fitchallenge/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB

	shopifyEndpoint shopify.IEndpoint
	storageAdapter  storage.Adapter

	challengeRepo     repository.ChallengeRepository
	participantRepo   repository.ParticipantRepository
	submissionRepo    repository.SubmissionRepository
	photoRepo         repository.PhotoRepository
	customizationRepo repository.CustomizationRepository
	shopSessionRepo   repository.ShopSessionRepository

	challengeDomain     domain.ChallengeDomain
	submissionDomain    domain.SubmissionDomain
	uploadDomain        domain.UploadDomain
	dashboardDomain     domain.DashboardDomain
	customizationDomain domain.CustomizationDomain
	authDomain          domain.AuthDomain
	maintenanceDomain   domain.MaintenanceDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		panic(err)
	}

	s.configs = &cfg
	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
	s.ctx = xcontext.WithHTTPClient(s.ctx, &http.Client{Timeout: cfg.ApiServer.OutboundTimeout})
}

func (s *srv) loadLogger() {
	var err error
	s.logger, err = logger.NewZapLogger(s.configs.Log.Level, s.configs.Log.Development)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	dsn := s.configs.Database.ConnectionString()

	var dialector gorm.Dialector
	switch s.configs.Database.Driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       dsn,
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	default:
		panic(fmt.Sprintf("unsupported database driver %s", s.configs.Database.Driver))
	}

	gormConfig := &gorm.Config{}
	if !s.configs.Database.LogEnabled {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	var err error
	s.db, err = gorm.Open(dialector, gormConfig)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadEndpoint() {
	s.shopifyEndpoint = shopify.New(s.configs.Shopify)
	if s.configs.Redis.Addr == "" {
		return
	}

	redisClient, err := xredis.NewClient(s.ctx, s.configs.Redis)
	if err != nil {
		// The cache is optional, lookups go directly to the platform.
		s.logger.Warnf("Cannot connect to redis, customer cache is disabled: %v", err)
		return
	}

	s.shopifyEndpoint = shopify.NewCachedEndpoint(
		s.shopifyEndpoint, redisClient, s.configs.Redis.CustomerCacheTTL)
}

func (s *srv) loadStorage() {
	var err error
	s.storageAdapter, err = storage.NewAdapter(s.configs.Storage)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.challengeRepo = repository.NewChallengeRepository()
	s.participantRepo = repository.NewParticipantRepository()
	s.submissionRepo = repository.NewSubmissionRepository()
	s.photoRepo = repository.NewPhotoRepository()
	s.customizationRepo = repository.NewCustomizationRepository()
	s.shopSessionRepo = repository.NewShopSessionRepository()
}

func (s *srv) loadDomains() {
	eligibilityDomain := domain.NewEligibilityDomain(s.challengeRepo, s.participantRepo, s.submissionRepo)

	s.challengeDomain = domain.NewChallengeDomain(s.challengeRepo)
	s.submissionDomain = domain.NewSubmissionDomain(eligibilityDomain, s.participantRepo,
		s.submissionRepo, s.photoRepo, s.shopSessionRepo, s.storageAdapter, s.shopifyEndpoint)
	s.uploadDomain = domain.NewUploadDomain(s.storageAdapter)
	s.dashboardDomain = domain.NewDashboardDomain(s.challengeRepo, s.participantRepo,
		s.submissionRepo, s.photoRepo, s.shopSessionRepo, s.shopifyEndpoint)
	s.customizationDomain = domain.NewCustomizationDomain(s.customizationRepo)
	s.authDomain = domain.NewAuthDomain(s.shopSessionRepo, s.shopifyEndpoint,
		domain.NewOAuthStateEngine(s.configs.Shopify.APISecret))
	s.maintenanceDomain = domain.NewMaintenanceDomain(s.challengeRepo, s.participantRepo,
		s.customizationRepo, s.shopSessionRepo, s.shopifyEndpoint)
}

func (s *srv) sessionTokenVerifier() authenticator.SessionTokenVerifier {
	return authenticator.NewSessionTokenVerifier(s.configs.Shopify.APIKey, s.configs.Shopify.APISecret)
}
