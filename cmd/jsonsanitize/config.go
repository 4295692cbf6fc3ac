package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/devwithmj/jsonsanitize/record"
	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Field              string `yaml:"field"`
	Mode               string `yaml:"mode"`
	OutputField        string `yaml:"output_field"`
	KeepOriginalFields bool   `yaml:"keep_original_fields"`
	OnError            string `yaml:"on_error"`
	Extract            bool   `yaml:"extract"`
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return &cfg, nil
}

func (c *fileConfig) options() record.Options {
	return record.Options{
		InputField:         c.Field,
		Mode:               record.Mode(c.Mode),
		OutputField:        c.OutputField,
		KeepOriginalFields: c.KeepOriginalFields,
		OnError:            record.ErrorMode(c.OnError),
		Extract:            c.Extract,
	}
}
