// Package web embeds the calculator page templates and its static assets.
package web

import "embed"

// TemplatesFS embeds the page, calculator and result templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds the stylesheet and script.
//
//go:embed static/*
var StaticFS embed.FS
