package main

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/mppl-lang/mpplc/render"
	"github.com/mppl-lang/mpplc/style"
)

// config is the shape of an optional .mpplrc.toml: tab width for
// diagnostic rendering and the terminal color mode. Its absence is not
// an error; defaultConfig is used instead.
type config struct {
	TabWidth int    `toml:"tab_width"`
	Color    string `toml:"color"`
}

func defaultConfig() config {
	return config{TabWidth: render.DefaultTabWidth, Color: "auto"}
}

// loadConfig reads path if it exists, overlaying any fields it sets
// onto the default configuration. A missing file is not an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c config) styleMode() style.Mode {
	switch c.Color {
	case "on":
		return style.On
	case "off":
		return style.Off
	default:
		return style.Auto
	}
}
