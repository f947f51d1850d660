package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Usage:   "Path of the toml config file",
		EnvVars: []string{"CONFIG_FILE"},
	}

	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "fitchallenge"
	s.app.Usage = "Weight-loss challenge app for Shopify stores"
	s.app.Flags = []cli.Flag{configFlag}
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Serve the admin, storefront, oauth and metrics endpoints.`,
		},
		{
			Action: s.startMigrate,
			Name:   "migrate",
			Usage:  "Migrate the database",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Usage: "Run only this migration version (it is run again if already applied)",
				},
			},
			Category: "Database",
		},
		{
			Action:      s.diagnoseShops,
			Name:        "diagnose-shops",
			Usage:       "List every shop domain found in the data and its problems",
			Category:    "Maintenance",
			Description: `Reports malformed shop domains and data of shops which have not installed the app.`,
		},
		{
			Action: s.fixShopDomain,
			Name:   "fix-shop-domain",
			Usage:  "Move the data of a malformed shop domain to the canonical one",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "from", Usage: "The malformed shop domain", Required: true},
				&cli.StringFlag{Name: "to", Usage: "The target shop domain, the normalized form of from by default"},
				&cli.BoolFlag{Name: "dry-run", Usage: "Report the changes without applying them"},
			},
			Category: "Maintenance",
		},
		{
			Action: s.backfillOrders,
			Name:   "backfill-orders",
			Usage:  "Look up the order data of participants which have never been synced",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "shop", Usage: "Only participants of this shop"},
				&cli.IntFlag{Name: "concurrency", Usage: "Number of parallel lookups", Value: 4},
			},
			Category: "Maintenance",
		},
	}
}
