// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arrayio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

// source is an opened file positioned at its beginning.
type source struct {
	f      *os.File
	size   int64
	r      io.Reader
	unmap  func() error
	mapped bool
}

// openSource opens path for reading. When useMmap is true, the file is
// memory-mapped if possible, otherwise read through a bufio.Reader.
func openSource(path string, useMmap bool, logger *slog.Logger) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fileOpenError(path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if fi.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}

	s := &source{f: f, size: fi.Size()}
	if useMmap && s.size > 0 {
		data, unmap, err := mapFile(f, s.size)
		if err == nil {
			s.r = bytes.NewReader(data)
			s.unmap = unmap
			s.mapped = true
			return s, nil
		}
		logger.Debug("falling back to buffered reads", "path", path, "error", err)
	}
	s.r = bufio.NewReader(f)
	return s, nil
}

// Close releases the mapping, if any, and closes the file.
func (s *source) Close() error {
	var errs []error
	if s.unmap != nil {
		errs = append(errs, s.unmap())
		s.unmap = nil
	}
	errs = append(errs, s.f.Close())
	return errors.Join(errs...)
}

func fileOpenError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	return fmt.Errorf("failed to open %s: %w", path, err)
}
