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

package config_test

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/malucard/kidfile-go/config"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	return fs
}

func TestLoadAppliesDefaults(t *testing.T) {
	fs := newFlagSet()
	if e := fs.Parse(nil); e != nil {
		t.Fatalf("Parse: %v", e)
	}

	c, e := config.Load(fs)
	if e != nil {
		t.Fatalf("Load: %v", e)
	}
	if c.OutputDir != "." {
		t.Fatalf("OutputDir = %q, want .", c.OutputDir)
	}
	if c.Workers <= 0 {
		t.Fatalf("Workers = %d, want > 0", c.Workers)
	}
	if c.Bundle != "none" {
		t.Fatalf("Bundle = %q, want none", c.Bundle)
	}
}

func TestLoadBindsOverriddenFlags(t *testing.T) {
	fs := newFlagSet()
	if e := fs.Parse([]string{"--workers=4", "--output=/tmp/out", "--bundle=gzip", "--log-level=debug"}); e != nil {
		t.Fatalf("Parse: %v", e)
	}

	c, e := config.Load(fs)
	if e != nil {
		t.Fatalf("Load: %v", e)
	}
	if c.Workers != 4 {
		t.Fatalf("Workers = %d, want 4", c.Workers)
	}
	if c.OutputDir != "/tmp/out" {
		t.Fatalf("OutputDir = %q, want /tmp/out", c.OutputDir)
	}
	if c.Bundle != "gzip" {
		t.Fatalf("Bundle = %q, want gzip", c.Bundle)
	}
	if c.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", c.LogLevel)
	}
}

func TestLoadRejectsUnknownBundleFormat(t *testing.T) {
	fs := newFlagSet()
	if e := fs.Parse([]string{"--bundle=rar"}); e != nil {
		t.Fatalf("Parse: %v", e)
	}

	if _, e := config.Load(fs); e == nil {
		t.Fatalf("expected an error for an unrecognized bundle format")
	}
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	fs := newFlagSet()
	if e := fs.Parse([]string{"--log-level=verbose"}); e != nil {
		t.Fatalf("Parse: %v", e)
	}

	if _, e := config.Load(fs); e == nil {
		t.Fatalf("expected an error for an unrecognized log level")
	}
}
