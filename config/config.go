/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package config binds the kidfile CLI's handful of settings - log level,
// worker count, output directory, bundle format - to command-line flags via
// viper/pflag. Unlike the teacher's config package, there is no component
// registry, no lifecycle (start/reload/stop), and no hot-reload: the CLI
// reads its configuration once at startup and runs to completion.
package config

import (
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/malucard/kidfile-go/export"
	"github.com/malucard/kidfile-go/logger"
)

// Config is the flat settings struct the CLI unmarshal's its flags into.
type Config struct {
	LogLevel  string `mapstructure:"log-level"`
	Workers   int    `mapstructure:"workers"`
	OutputDir string `mapstructure:"output"`
	Bundle    string `mapstructure:"bundle"`
}

// RegisterFlags declares the CLI flags Load expects to find bound, with
// defaults matching the zero-config behavior (auto worker count, no
// bundling). Call once per command against that command's own FlagSet.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", strings.ToLower(logger.InfoLevel.String()), "log level ("+strings.Join(logger.GetLevelListString(), ", ")+")")
	fs.Int("workers", runtime.NumCPU(), "number of concurrent decode workers")
	fs.String("output", ".", "directory decoded output is written to")
	fs.String("bundle", export.None.String(), "bundle decoded output as ("+strings.Join(export.ListString(), ", ")+")")
}

// Load binds fs to a fresh viper instance and unmarshals it into a Config,
// validating the log level and bundle format against the sets logger and
// export actually recognize.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if e := v.BindPFlags(fs); e != nil {
		return nil, ErrorBindFlags.Error(e)
	}

	var c Config
	if e := v.Unmarshal(&c); e != nil {
		return nil, ErrorUnmarshal.Error(e)
	}

	if !containsFold(logger.GetLevelListString(), c.LogLevel) {
		return nil, ErrorInvalidLogLevel.Error(nil)
	}

	if !strings.EqualFold(c.Bundle, export.None.String()) && export.Parse(c.Bundle).IsNone() {
		return nil, ErrorInvalidBundleFormat.Error(nil)
	}

	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	return &c, nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
