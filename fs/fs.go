package appfs

import "embed"

// FS embeds non-code assets needed at runtime; goose reads migrations from it.
//go:embed migrations
var FS embed.FS
