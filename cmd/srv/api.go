package main

import (
	"net/http"

	"github.com/fitchallenge/backend/internal/middleware"
	"github.com/fitchallenge/backend/pkg/prometheus"
	"github.com/fitchallenge/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.loadEndpoint()
	s.loadStorage()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: middleware.Cors(s.configs.ApiServer, s.router.Handler()),
	}

	s.logger.Infof("Starting server on %s", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	s.logger.Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())
	if s.configs.ApiServer.MetricsEnabled {
		s.router.AddCloser(middleware.Prometheus())
		s.router.Raw(http.MethodGet, "/metrics", prometheus.NewHandler())
	}

	// OAuth install flow of the app.
	authRouter := s.router.Group("/auth")
	{
		router.GET(authRouter, "/install", s.authDomain.Install)
		router.GET(authRouter, "/callback", s.authDomain.Callback)
	}

	// These following APIs are called by the embedded admin with a session
	// token.
	adminRouter := s.router.Group("/admin")
	adminRouter.Before(middleware.NewAdminVerifier(s.sessionTokenVerifier()).Middleware())
	{
		// Challenge API
		router.POST(adminRouter, "/createChallenge", s.challengeDomain.Create)
		router.GET(adminRouter, "/getChallenge", s.challengeDomain.Get)
		router.GET(adminRouter, "/getListChallenge", s.challengeDomain.GetList)
		router.POST(adminRouter, "/updateChallenge", s.challengeDomain.Update)
		router.POST(adminRouter, "/deleteChallenge", s.challengeDomain.Delete)
		router.POST(adminRouter, "/setActiveChallenge", s.challengeDomain.SetActive)

		// Dashboard API
		router.GET(adminRouter, "/getListParticipant", s.dashboardDomain.GetListParticipant)
		router.GET(adminRouter, "/getLeaderboard", s.dashboardDomain.GetLeaderboard)
		router.GET(adminRouter, "/getComparison", s.dashboardDomain.GetComparison)
		router.GET(adminRouter, "/getStatistic", s.dashboardDomain.GetStatistic)
		router.POST(adminRouter, "/refreshOrders", s.dashboardDomain.RefreshOrders)

		// Customization API
		router.GET(adminRouter, "/getCustomization", s.customizationDomain.Get)
		router.POST(adminRouter, "/updateCustomization", s.customizationDomain.Update)
	}

	// These following APIs are called by the storefront, either through the
	// app proxy or directly with the session cookie.
	storefrontRouter := s.router.Group("/storefront")
	storefrontRouter.Before(middleware.NewShopperVerifier(s.shopifyEndpoint).Middleware())
	{
		router.GET(storefrontRouter, "/getMe", s.authDomain.GetMe)
		router.GET(storefrontRouter, "/getStatus", s.submissionDomain.GetStatus)
		router.GET(storefrontRouter, "/getCustomization", s.customizationDomain.Get)
		router.POST(storefrontRouter, "/getUploadTarget", s.uploadDomain.GetUploadTarget)
		router.POST(storefrontRouter, "/getUploadTargets", s.uploadDomain.GetUploadTargets)
		router.POST(storefrontRouter, "/submitStart", s.submissionDomain.SubmitStart)
		router.POST(storefrontRouter, "/submitEnd", s.submissionDomain.SubmitEnd)
	}
}
