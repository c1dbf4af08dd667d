// Package web holds the static assets served under /static.
package web

import "embed"

// FS contains the stylesheet and any other static files.
//
//go:embed static/*
var FS embed.FS
