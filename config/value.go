package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/ytfetch-cli/ytfetch/icon"
	"github.com/ytfetch-cli/ytfetch/key"
)

// UnknownKeyError is returned for names matching neither a key nor one of its environment variables.
type UnknownKeyError struct {
	Name    string
	Closest string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key %s, did you mean %s?", e.Name, e.Closest)
}

// Lookup finds a field by key, prefixed environment variable or legacy alias.
// Environment names match case-insensitively, so "addr" finds server.addr.
func Lookup(name string) (Field, error) {
	if field, ok := Default[name]; ok {
		return field, nil
	}

	upper := strings.ToUpper(name)
	for _, field := range Default {
		if field.Env() == upper || lo.Contains(field.Aliases, upper) {
			return field, nil
		}
	}

	closest := lo.MinBy(lo.Keys(Default), func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})
	return Field{}, &UnknownKeyError{Name: name, Closest: closest}
}

// Source names where the effective value of the field comes from: env, file or default.
func (f *Field) Source() string {
	for _, env := range append([]string{f.Env()}, f.Aliases...) {
		if _, ok := os.LookupEnv(env); ok {
			return "env"
		}
	}
	if viper.InConfig(f.Key) {
		return "file"
	}
	return "default"
}

// Parse converts raw command-line values to the field's type and validates the result.
func (f *Field) Parse(raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: value is required", f.Key)
	}

	var (
		value any
		err   error
	)
	switch f.Value.(type) {
	case string:
		value = raw[0]
	case int:
		value, err = strconv.Atoi(raw[0])
	case bool:
		value, err = strconv.ParseBool(raw[0])
	case []string:
		value = raw
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", f.Key, f.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: invalid %s value %q", f.Key, f.typeName(), raw[0])
	}

	if validate, ok := validators[f.Key]; ok {
		if err := validate(value); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Key, err)
		}
	}
	return value, nil
}

var validators = map[string]func(any) error{
	key.ServerAddr: func(v any) error {
		_, port, err := net.SplitHostPort(v.(string))
		if err != nil {
			return err
		}
		if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
			return fmt.Errorf("invalid port %q", port)
		}
		return nil
	},
	key.NetworkTimeout: func(v any) error {
		if v.(int) < 0 {
			return fmt.Errorf("timeout must not be negative")
		}
		return nil
	},
	key.SweepTTLHours: func(v any) error {
		if v.(int) < 1 {
			return fmt.Errorf("ttl must be at least one hour")
		}
		return nil
	},
	key.IconsVariant: oneOf(icon.AvailableVariants()),
	key.LogsLevel: func(v any) error {
		_, err := logrus.ParseLevel(v.(string))
		return err
	},
}

func oneOf(options []string) func(any) error {
	return func(v any) error {
		if !lo.Contains(options, v.(string)) {
			return fmt.Errorf("expected one of %s", strings.Join(options, ", "))
		}
		return nil
	}
}
