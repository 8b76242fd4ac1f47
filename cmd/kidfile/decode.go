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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/malucard/kidfile-go/archive"
	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/config"
	"github.com/malucard/kidfile-go/decode"
	"github.com/malucard/kidfile-go/pixel"
)

func newDecodeCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <path>",
		Short: "Auto-decode a single file and print the steps taken",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(*cfg, args[0])
		},
	}
}

func openFile(path string) (*bytesource.FileData, error) {
	info, e := os.Stat(path)
	if e != nil {
		return nil, e
	}
	return bytesource.NewStream(path, 0, info.Size()), nil
}

func runDecode(cfg *config.Config, path string) error {
	log := newLogger(cfg)

	f, e := openFile(path)
	if e != nil {
		return e
	}

	log.Info("decoding %s", nil, path)
	result := decode.AutoDecodeFull(f, "", registries())

	if len(result.Steps) == 0 {
		fmt.Printf("%s: no decoder matched\n", path)
	} else {
		fmt.Printf("%s: %s\n", path, strings.Join(result.Steps, " -> "))
	}

	switch result.Out.Kind {
	case decode.KindArchive:
		arc := result.Out.Value.(*archive.Archive)
		fmt.Printf("  archive %q: %d entries\n", arc.Format, len(arc.Entries))
		for _, e := range arc.Entries {
			fmt.Printf("    %s (%d bytes)\n", e.Name, e.Data.Len())
		}
		if cfg.OutputDir != "" {
			return writeArchiveEntries(cfg.OutputDir, arc)
		}
	case decode.KindImage:
		img := result.Out.Value.(*pixel.Image)
		fmt.Printf("  image %q: %d frame(s)\n", img.Format, len(img.Frames))
		for i, fr := range img.Frames {
			fmt.Printf("    frame %d: %dx%d (%s)\n", i, fr.Width, fr.Height, fr.OriginalFormat.String())
		}
	case decode.KindRaw:
		if result.ErrMsg != "" {
			fmt.Printf("  stalled on raw data: %s\n", result.ErrMsg)
		}
	}

	return nil
}

func writeArchiveEntries(dir string, arc *archive.Archive) error {
	if e := os.MkdirAll(dir, 0o755); e != nil {
		return e
	}
	for _, entry := range arc.Entries {
		data, e := entry.Data.Read()
		if e != nil {
			return e
		}
		if e := os.WriteFile(filepath.Join(dir, entry.Name), data, 0o644); e != nil {
			return e
		}
	}
	return nil
}
