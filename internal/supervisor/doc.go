// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor provides process supervision for Marquee using suture v4.

The tree is small:

	RootSupervisor ("marquee")
	├── CoreSupervisor ("core-layer")
	│   └── UptimeService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure decay and backoff.
Supervisor events are logged through sutureslog, which takes the slog
bridge from the logging package so that everything ends up in zerolog.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddCoreService(services.NewUptimeService(start, 15*time.Second))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)

Services return nil to stop for good, an error to be restarted, and must
return promptly once ctx is canceled.

The catalog is not supervised. It is loaded once before the tree starts
and is read-only afterwards.
*/
package supervisor
