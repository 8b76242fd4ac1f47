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

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/malucard/kidfile-go/config"
	"github.com/malucard/kidfile-go/logger"
)

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "kidfile",
		Short:         "Detect and decode reverse-engineered adventure-game file formats",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, e := config.Load(cmd.Flags())
			if e != nil {
				return e
			}
			cfg = c
			return nil
		},
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newDecodeCmd(&cfg))
	root.AddCommand(newBatchCmd(&cfg))

	return root
}

// newLogger builds the logger for one command invocation at cfg's level.
func newLogger(cfg *config.Config) logger.Logger {
	l := logger.New(context.Background())
	l.SetLevel(logger.GetLevelString(cfg.LogLevel))
	return l
}
