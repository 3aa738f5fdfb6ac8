package model

import (
	"sort"
	"strings"
)

// Category holds display metadata for a service category.
type Category struct {
	Key   string
	Label string
	Emoji string
	Color int
}

// FallbackCategory is used for categories outside the catalogue.
var FallbackCategory = Category{Key: "other", Label: "Other", Emoji: "📦", Color: 0x95A5A6}

var categories = map[string]Category{
	"discord-bot":  {Key: "discord-bot", Label: "Discord Bot", Emoji: "🤖", Color: 0x5865F2},
	"website":      {Key: "website", Label: "Website", Emoji: "🌐", Color: 0x3498DB},
	"server-setup": {Key: "server-setup", Label: "Server Setup", Emoji: "🛠️", Color: 0xE67E22},
	"automation":   {Key: "automation", Label: "Automation Script", Emoji: "⚙️", Color: 0x2ECC71},
	"design":       {Key: "design", Label: "Design", Emoji: "🎨", Color: 0xE91E63},
}

// LookupCategory resolves a submitted category, falling back for unknown values.
func LookupCategory(value string) Category {
	key := strings.ToLower(strings.TrimSpace(value))
	key = strings.Join(strings.Fields(key), "-")
	if c, ok := categories[key]; ok {
		return c
	}
	for _, c := range categories {
		if strings.EqualFold(c.Label, strings.TrimSpace(value)) {
			return c
		}
	}
	return FallbackCategory
}

// Categories lists the catalogue ordered by key.
func Categories() []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
