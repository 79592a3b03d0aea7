// Package appfs exposes the project's embedded assets: database migrations
// and the education system catalog seed.
package appfs

import "embed"

//go:embed migrations catalog-seed.json
var FS embed.FS
