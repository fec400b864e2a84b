// Package appfs exposes the repository's embedded assets (database
// migrations) to the storage and admin layers.
package appfs

import "embed"

//go:embed migrations/*.sql
var FS embed.FS
