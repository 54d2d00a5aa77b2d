package config

import (
	"flag"
	"fmt"
)

// ParseArgs builds a Config from the defaults, an optional -config YAML file
// and the remaining flags, later sources taking precedence.
func ParseArgs(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()
	var path string
	fs.StringVar(&path, "config", "", "YAML configuration file applied before flags")
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if path != "" {
		explicit := map[string]string{}
		fs.Visit(func(f *flag.Flag) {
			if f.Name != "config" {
				explicit[f.Name] = f.Value.String()
			}
		})
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
		for name, value := range explicit {
			if err := fs.Set(name, value); err != nil {
				return nil, fmt.Errorf("config: reapply -%s: %w", name, err)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
