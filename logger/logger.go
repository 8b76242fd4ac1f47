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

package logger

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the printf-style logging surface the CLI uses to report decode
// and batch progress. data is attached as a "data" field when non-nil;
// message is formatted with args via fmt.Sprintf exactly like the
// corresponding logrus.Entry call.
type Logger interface {
	// SetLevel changes the minimum level that reaches the sink.
	SetLevel(lvl Level)

	// GetLevel returns the minimum level that reaches the sink.
	GetLevel() Level

	// Debug logs diagnostic detail useful for tracking a problem down
	// later.
	Debug(message string, data interface{}, args ...interface{})

	// Info logs routine progress with no impact on control flow.
	Info(message string, data interface{}, args ...interface{})

	// Warning logs something worth reviewing that does not stop the
	// caller.
	Warning(message string, data interface{}, args ...interface{})

	// Error logs a failure that stops the caller's current operation.
	Error(message string, data interface{}, args ...interface{})
}

type lgr struct {
	ctx context.Context
	l   *logrus.Logger
}

// New returns a Logger writing to stdout at InfoLevel, carrying ctx on
// every entry it logs.
func New(ctx context.Context) Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(InfoLevel.Logrus())

	return &lgr{ctx: ctx, l: l}
}

func (g *lgr) SetLevel(lvl Level) {
	g.l.SetLevel(lvl.Logrus())
}

func (g *lgr) GetLevel() Level {
	switch g.l.GetLevel() {
	case logrus.DebugLevel:
		return DebugLevel
	case logrus.WarnLevel:
		return WarnLevel
	case logrus.ErrorLevel:
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func (g *lgr) entry(lvl Level, message string, data interface{}, args ...interface{}) {
	e := g.l.WithContext(g.ctx)
	if data != nil {
		e = e.WithField("data", data)
	}
	e.Log(lvl.Logrus(), fmt.Sprintf(message, args...))
}

func (g *lgr) Debug(message string, data interface{}, args ...interface{}) {
	g.entry(DebugLevel, message, data, args...)
}

func (g *lgr) Info(message string, data interface{}, args ...interface{}) {
	g.entry(InfoLevel, message, data, args...)
}

func (g *lgr) Warning(message string, data interface{}, args ...interface{}) {
	g.entry(WarnLevel, message, data, args...)
}

func (g *lgr) Error(message string, data interface{}, args ...interface{}) {
	g.entry(ErrorLevel, message, data, args...)
}
