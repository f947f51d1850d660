package main

import (
	"encoding/json"
	"os"

	"github.com/fitchallenge/backend/internal/domain"
	"github.com/fitchallenge/backend/internal/model"
	"github.com/urfave/cli/v2"
)

func (s *srv) loadMaintenance(cctx *cli.Context) {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.loadEndpoint()
	s.loadRepos()
	s.maintenanceDomain = domain.NewMaintenanceDomain(s.challengeRepo, s.participantRepo,
		s.customizationRepo, s.shopSessionRepo, s.shopifyEndpoint)
}

func (s *srv) diagnoseShops(cctx *cli.Context) error {
	s.loadMaintenance(cctx)

	resp, err := s.maintenanceDomain.DiagnoseShops(s.ctx, &model.DiagnoseShopsRequest{})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func (s *srv) fixShopDomain(cctx *cli.Context) error {
	s.loadMaintenance(cctx)

	resp, err := s.maintenanceDomain.FixShopDomain(s.ctx, &model.FixShopDomainRequest{
		From:   cctx.String("from"),
		To:     cctx.String("to"),
		DryRun: cctx.Bool("dry-run"),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func (s *srv) backfillOrders(cctx *cli.Context) error {
	s.loadMaintenance(cctx)

	resp, err := s.maintenanceDomain.BackfillOrders(s.ctx, &model.BackfillOrdersRequest{
		Shop:        cctx.String("shop"),
		Concurrency: cctx.Int("concurrency"),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
