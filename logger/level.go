/*
MIT License

Copyright (c) 2019 Nicolas JUHEL

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is a uint8 type customized with the four levels the kidfile CLI
// actually logs at.
type Level uint8

const (
	// ErrorLevel means the caller stops its current operation and returns.
	ErrorLevel Level = iota
	// WarnLevel means the caller noticed something worth reviewing but
	// keeps going.
	WarnLevel
	// InfoLevel is routine progress information with no impact on the
	// caller's control flow.
	InfoLevel
	// DebugLevel is only useful to track down a problem later.
	DebugLevel
)

// GetLevelListString returns the lowercase name of every valid Level, in
// the order a --log-level flag's help text should list them.
func GetLevelListString() []string {
	return []string{
		strings.ToLower(ErrorLevel.String()),
		strings.ToLower(WarnLevel.String()),
		strings.ToLower(InfoLevel.String()),
		strings.ToLower(DebugLevel.String()),
	}
}

// GetLevelString returns the Level matching the given string, substring
// case-insensitively. Returns InfoLevel if nothing matches.
func GetLevelString(l string) Level {
	l = strings.ToLower(l)
	switch {
	case strings.Contains(strings.ToLower(ErrorLevel.String()), l):
		return ErrorLevel
	case strings.Contains(strings.ToLower(WarnLevel.String()), l):
		return WarnLevel
	case strings.Contains(strings.ToLower(InfoLevel.String()), l):
		return InfoLevel
	case strings.Contains(strings.ToLower(DebugLevel.String()), l):
		return DebugLevel
	}
	return InfoLevel
}

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "Debug"
	case InfoLevel:
		return "Info"
	case WarnLevel:
		return "Warning"
	case ErrorLevel:
		return "Error"
	}
	return "unknown"
}

// Logrus converts to the equivalent logrus.Level.
func (l Level) Logrus() logrus.Level {
	switch l {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
