// Package scaffold holds the starter site that `novela new` writes out: a
// config.yaml, a first post with tip callouts and an authors file.
package scaffold

import "embed"

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS
