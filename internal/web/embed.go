package web

import "embed"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets/*
var assetFS embed.FS
