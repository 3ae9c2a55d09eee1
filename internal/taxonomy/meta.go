// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package taxonomy provides the pure helpers behind the category admin:
// SEO metadata derivation and parent-hierarchy validation.
package taxonomy

import (
	"fmt"
	"strings"
)

// SEO length limits. Meta titles and descriptions are truncated with a
// trailing ellipsis when they exceed these caps.
const (
	MaxMetaTitleLen = 60
	MaxMetaDescLen  = 160
)

// GenerateDescription builds a human-readable category description from the
// category name and, when nested, its parent's name. Returns "" for an
// empty name.
func GenerateDescription(name, parentName string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	if parentName = strings.TrimSpace(parentName); parentName != "" {
		return fmt.Sprintf(
			"Discover %s content in our %s section, covering articles, guides, and resources.",
			lower, strings.ToLower(parentName),
		)
	}
	return fmt.Sprintf("A comprehensive collection of %s content, articles, and resources.", lower)
}

// GenerateMetaTitle builds an SEO title from the category name, suffixed
// with the parent name when nested. Capped at MaxMetaTitleLen.
func GenerateMetaTitle(name, parentName string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	title := name
	if parentName = strings.TrimSpace(parentName); parentName != "" {
		title = name + " - " + parentName
	}
	return Ellipsize(title, MaxMetaTitleLen)
}

// GenerateMetaDescription builds an SEO description. A non-empty description
// is used as-is; otherwise one is synthesized from the category name. Either
// way the result is capped at MaxMetaDescLen.
func GenerateMetaDescription(description, name string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		name = strings.TrimSpace(name)
		if name == "" {
			return ""
		}
		lower := strings.ToLower(name)
		description = fmt.Sprintf(
			"Browse %s articles, guides, and resources. Everything you need to know about %s.",
			lower, lower,
		)
	}
	return Ellipsize(description, MaxMetaDescLen)
}

// Ellipsize truncates s to max characters, replacing the tail with "..."
// when truncation occurs. Limits are counted in runes so multibyte names
// are never cut mid-character.
func Ellipsize(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
