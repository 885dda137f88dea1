package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/benn-herrera/letterboxed-mp/compiler"
	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
)

// Config is the content of an apigen.yaml file:
//
//	api_def: engine_api.json
//	api_h: api/engine_api.h
//	package: com.company.engine
//	targets:
//	  - name: cpp
//	    header: gen/api/engine_api.h
//	  - name: jni
//	    source: gen/jni/engine_jni.cpp
//
// Relative paths are resolved against the directory of the file. api_h,
// package and swift_h apply to every target not setting its own.
type Config struct {
	APIDef      string            `mapstructure:"api_def"`
	APIHeader   string            `mapstructure:"api_h"`
	Package     string            `mapstructure:"package"`
	SwiftHeader string            `mapstructure:"swift_h"`
	Workers     int               `mapstructure:"workers"`
	Targets     []compiler.Target `mapstructure:"targets"`

	// path is the file the configuration was read from.
	path string
}

// loadConfig reads the configuration file at path into v. Settings may be
// overridden by APIGEN_ environment variables, as in APIGEN_API_DEF.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	for _, key := range []string{"api_def", "api_h", "package", "swift_h", "workers"} {
		_ = v.BindEnv(key)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.path = path
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.resolve()
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.APIDef == "" {
		return gen.NewConfigError("api_def", nil, "no API description document configured in "+c.path)
	}
	if len(c.Targets) == 0 {
		return gen.NewConfigError("targets", nil, "no targets configured in "+c.path)
	}
	for i, t := range c.Targets {
		if _, err := compiler.NewGenerator(t.Name); err != nil {
			return fmt.Errorf("%s: targets[%d]: %w", c.path, i, err)
		}
	}
	return nil
}

// resolve makes the document and output paths relative to the directory of
// the configuration file.
func (c *Config) resolve() {
	dir := filepath.Dir(c.path)
	rel := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.APIDef = rel(c.APIDef)
	for i := range c.Targets {
		c.Targets[i].Header = rel(c.Targets[i].Header)
		c.Targets[i].Source = rel(c.Targets[i].Source)
	}
}

// options returns the run-wide generator options of c.
func (c *Config) options() []gen.Option {
	var opts []gen.Option
	if c.APIHeader != "" {
		opts = append(opts, gen.WithAPIHeader(c.APIHeader))
	}
	if c.Package != "" {
		opts = append(opts, gen.WithPackage(c.Package))
	}
	if c.SwiftHeader != "" {
		opts = append(opts, gen.WithSwiftHeader(c.SwiftHeader))
	}
	if c.Workers > 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	return opts
}
