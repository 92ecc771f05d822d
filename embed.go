package bee

import "embed"

// EmbeddedAssets contains the theme stylesheet shipped with bee.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
