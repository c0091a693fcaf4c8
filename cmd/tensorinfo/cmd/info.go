// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"

	"github.com/nlpodyssey/arrayio"
	"github.com/spf13/cobra"
)

func newInfoCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE...",
		Short: "Show element type, shape and format of array files",
		Long: `Show element type, shape, codec and header variant of each file.
Only headers are read.

Example:
  tensorinfo info weights.tensor old/*.tensor`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs []error
			for _, path := range args {
				a, err := arrayio.FromFile(path, e.options()...)
				if err != nil {
					cmd.PrintErrf("%s: %v\n", path, err)
					errs = append(errs, err)
					continue
				}
				cmd.Printf("%s: codec=%s variant=%s dtype=%s shape=%v\n",
					path, a.Codec().Name(), a.Variant(), a.DType(), a.Shape())
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d files could not be read: %w", len(errs), len(args), errors.Join(errs...))
			}
			return nil
		},
	}
}
