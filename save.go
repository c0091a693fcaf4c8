// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arrayio

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nlpodyssey/arrayio/buffer"
	"github.com/nlpodyssey/arrayio/codec"
	"github.com/nlpodyssey/arrayio/dtype"
	"github.com/segmentio/ksuid"
)

// Save writes the Array to path, with the codec claiming its extension,
// loading the Array first if needed.
//
// The file is written to a temporary file in the same directory, then
// renamed over path: readers never observe a partially written file, and
// saving over the Array's own backing file is safe. The Array keeps
// referring to its original file, if any.
func (a *Array) Save(path string) error {
	c, err := a.opts.registry.Resolve(path)
	if err != nil {
		return fmt.Errorf("cannot save %s: %w", path, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err = a.load(); err != nil {
		return err
	}

	if err = writeFileAtomic(path, c, a.dt, a.shape, a.data); err != nil {
		return err
	}
	a.opts.logger.Debug("saved array", "path", path, "codec", c.Name(), "dtype", a.dt, "shape", a.shape)
	return nil
}

func writeFileAtomic(path string, c codec.Codec, dt dtype.ElementType, shape buffer.Shape, b buffer.Buffer) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", name, ksuid.New()))

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			err = errors.Join(err, f.Close())
		}
		err = errors.Join(err, os.Remove(tmpPath))
	}()

	w := bufio.NewWriter(f)
	if err = c.Write(w, dt, shape, b); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	closed = true
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
