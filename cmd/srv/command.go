package main

import "github.com/urfave/cli/v2"

// NewApp creates an app with sane defaults.
func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Tickex"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Used for start service api, the main service included all apis.`,
		},
		{
			Action:      server.startCollectionRPC,
			Name:        "collection",
			Usage:       "Start collection provisioning service",
			Flags:       []cli.Flag{},
			Category:    "Chain",
			Description: `Used to provision NFT ticket collections. Holds the funded authority keypair.`,
		},
		{
			Action:      server.startSearchRPC,
			Name:        "search",
			Usage:       "Start search index service",
			Flags:       []cli.Flag{},
			Category:    "Search",
			Description: `Used to index and search events over a local bleve index.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Run database migrations",
			Flags:       []cli.Flag{},
			Category:    "Database",
			Description: `Used to run gorm auto migrations on the configured database.`,
		},
	}

	s.app = app
}
