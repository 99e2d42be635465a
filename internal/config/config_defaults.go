package config

import (
	"gopkg.in/yaml.v3"
)

var defaults Config

func init() {
	raw := []byte(`version: v1

# Strip raw HTML from the preview. Turn off to see the Font popover's
# colored spans rendered.
safe: true

theme: catppuccin-mocha

# Tokens offered by the Stamps popover, inserted as " :token: ".
stamps:
  - good
  - bad
  - tick
  - cross
  - star
  - question
  - flower
  - heart

palette:
  - black
  - red
  - green
  - blue
  - orange
  - purple
  - "#888888"

sizes: [12, 14, 16, 18, 24, 32]

# Presets for the Tabs popover. A literal \n becomes a line break.
snippets:
  - "\t"
  - '| Column | Column |\n| ------ | ------ |\n|        |        |'
  - '- [ ] '
  - '> '

log:
  path: ""
  verbose: false
`)

	if err := yaml.Unmarshal(raw, &defaults); err != nil {
		panic(err)
	}
	if err := defaults.Validate(); err != nil {
		panic(err)
	}
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	c := defaults
	c.Stamps = append([]string(nil), defaults.Stamps...)
	c.Palette = append([]string(nil), defaults.Palette...)
	c.Sizes = append([]int(nil), defaults.Sizes...)
	c.Snippets = append([]string(nil), defaults.Snippets...)
	return &c
}
