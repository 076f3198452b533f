package config

import "git.home.luguber.info/inful/sitebuilder/internal/confmap"

// defaultTree returns the fixed-shape built-in configuration. Site fragments
// and environment overrides merge on top of it.
func defaultTree() confmap.Tree {
	return confmap.Tree{
		"build": confmap.Tree{
			"themes_dir": "themes",
			"envs": confmap.Tree{
				"max_workers": 8,
			},
			"settings": confmap.Tree{
				"create_config":              true,
				"validate_site":              true,
				"prettify_html":              true,
				"front_matter_parts":         3,
				"read_time_words_per_minute": 200,
			},
		},
		"content": confmap.Tree{
			"site": confmap.Tree{
				"theme": "default",
			},
			"posts": confmap.Tree{
				"defaults": confmap.Tree{},
			},
			"pages": confmap.Tree{
				"defaults": confmap.Tree{},
				"tags": confmap.Tree{
					"enabled": false,
				},
			},
			"languages": confmap.Tree{},
		},
		"env": confmap.Tree{},
	}
}
