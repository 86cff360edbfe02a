package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/t14raptor/jsarena/ast"
)

// config is the merged configuration. Later layers win: defaults, the
// config file, JSARENA_* environment variables, then flags.
type config struct {
	Workers int `yaml:"workers"`
	// FixedSize is the per worker arena in bytes. Zero parses each file in
	// its own growing allocator.
	FixedSize      uint64 `yaml:"fixed_size"`
	SourceType     string `yaml:"source_type"`
	AllowReturn    bool   `yaml:"allow_return_outside_function"`
	PreserveParens bool   `yaml:"preserve_parens"`
	LogLevel       string `yaml:"log_level"`
}

func defaultConfig() config {
	return config{FixedSize: 1 << 24, LogLevel: "warn"}
}

// loadFile reads a YAML config file over c. Unknown keys are errors.
func (c *config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// loadEnv reads the JSARENA_* variables over c. The env package caches the
// environment, so it is loaded again first.
func (c *config) loadEnv() {
	env.Load()
	c.Workers = env.Int("JSARENA_WORKERS", c.Workers)
	if size := env.Int("JSARENA_FIXED_SIZE", -1); size >= 0 {
		c.FixedSize = uint64(size)
	}
	c.SourceType = env.Str("JSARENA_SOURCE_TYPE", c.SourceType)
	c.LogLevel = env.Str("JSARENA_LOG_LEVEL", c.LogLevel)
}

// sourceType maps a file extension such as "cjs" or "d.ts" to a source
// type. The empty string derives it from each file name instead.
func (c *config) sourceType() (*ast.SourceType, error) {
	if c.SourceType == "" {
		return nil, nil
	}
	st, err := ast.SourceTypeFromPath("input." + strings.TrimPrefix(c.SourceType, "."))
	if err != nil {
		return nil, fmt.Errorf("source type: %w", err)
	}
	return &st, nil
}

func (c *config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}
