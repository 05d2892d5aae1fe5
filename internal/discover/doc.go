// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package discover assembles everything a page shows before it is rendered.
//
// A Service resolves the selected title, ranks its neighbours and then
// fans out every metadata fetch the page needs (backdrop, trailer, one
// poster per recommendation, both trending rails) on a bounded errgroup
// under a single page deadline. Fetches never fail the page: each one
// records its own degradation as a Notice, and the renderer only sees
// resolved values.
package discover
