package novela

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// novela.css, the theme stylesheet served under /public/.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
