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
	"bytes"
	"fmt"
	stdimage "image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/malucard/kidfile-go/archive"
	"github.com/malucard/kidfile-go/config"
	"github.com/malucard/kidfile-go/decode"
	"github.com/malucard/kidfile-go/export"
	"github.com/malucard/kidfile-go/pixel"
	"github.com/malucard/kidfile-go/worker"
)

func newBatchCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <dir>",
		Short: "Walk a directory and auto-decode every file it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(*cfg, args[0])
		},
	}
}

func runBatch(cfg *config.Config, root string) error {
	log := newLogger(cfg)

	pool := worker.NewPool(registries())
	pool.N = cfg.Workers

	var mu sync.Mutex
	var items []export.Item

	pool.OnResult = func(r worker.Result) {
		log.Info("decoded %s: %s", nil, r.Path.String(), strings.Join(r.Full.Steps, " -> "))
		got, e := flattenResult(r)
		if e != nil {
			log.Warning("skipping %s: %s", nil, r.Path.String(), e.Error())
			return
		}
		if len(got) == 0 {
			return
		}
		mu.Lock()
		items = append(items, got...)
		mu.Unlock()
	}

	e := filepath.WalkDir(root, func(path string, d fs.DirEntry, e error) error {
		if e != nil {
			return e
		}
		if d.IsDir() {
			return nil
		}
		return pool.EnqueueFile(path)
	})
	if e != nil {
		return e
	}

	if e := pool.Run(); e != nil {
		return e
	}

	fmt.Printf("found %d, processed %d\n", pool.Found(), pool.Processed())

	if export.Parse(cfg.Bundle).IsNone() {
		return writeItemsFlat(cfg.OutputDir, items)
	}
	return bundleItems(cfg, items)
}

// flattenResult turns one completed job's top-level decode into the output
// items it should contribute. Archive results contribute their entries
// verbatim (children are already queued separately and reported on their
// own); image results contribute one PNG per frame. Raw/stalled results
// contribute nothing.
func flattenResult(r worker.Result) ([]export.Item, error) {
	switch r.Full.Out.Kind {
	case decode.KindArchive:
		arc := r.Full.Out.Value.(*archive.Archive)
		items := make([]export.Item, 0, len(arc.Entries))
		for _, e := range arc.Entries {
			data, err := e.Data.Read()
			if err != nil {
				return nil, err
			}
			name := r.Path.String() + "/" + e.Name
			items = append(items, export.Item{Name: sanitizeName(name), Data: append([]byte(nil), data...)})
		}
		return items, nil

	case decode.KindImage:
		img := r.Full.Out.Value.(*pixel.Image)
		items := make([]export.Item, 0, len(img.Frames))
		for i, fr := range img.Frames {
			buf, err := encodePNG(fr)
			if err != nil {
				return nil, err
			}
			name := fmt.Sprintf("%s-%d.png", sanitizeName(r.Path.String()), i)
			items = append(items, export.Item{Name: name, Data: buf})
		}
		return items, nil
	}

	return nil, nil
}

func encodePNG(fr *pixel.Frame) ([]byte, error) {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, fr.Width, fr.Height))
	copy(img.Pix, fr.AsRGBABytes())

	var buf bytes.Buffer
	if e := png.Encode(&buf, img); e != nil {
		return nil, e
	}
	return buf.Bytes(), nil
}

func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "::", "/")
	name = strings.TrimPrefix(name, "/")
	return name
}

func writeItemsFlat(dir string, items []export.Item) error {
	if len(items) == 0 {
		return nil
	}
	if e := os.MkdirAll(dir, 0o755); e != nil {
		return e
	}
	for _, it := range items {
		p := filepath.Join(dir, filepath.FromSlash(it.Name))
		if e := os.MkdirAll(filepath.Dir(p), 0o755); e != nil {
			return e
		}
		if e := os.WriteFile(p, it.Data, 0o644); e != nil {
			return e
		}
	}
	return nil
}

func bundleItems(cfg *config.Config, items []export.Item) error {
	if len(items) == 0 {
		return nil
	}
	if e := os.MkdirAll(cfg.OutputDir, 0o755); e != nil {
		return e
	}
	algo := export.Parse(cfg.Bundle)
	f, e := os.Create(filepath.Join(cfg.OutputDir, "kidfile-batch.tar"+algo.Extension()))
	if e != nil {
		return e
	}
	defer f.Close()
	return export.Bundle(algo, items, f)
}
