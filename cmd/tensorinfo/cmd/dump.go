// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"reflect"

	"github.com/nlpodyssey/arrayio"
	"github.com/spf13/cobra"
)

func newDumpCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the elements of an array file",
		Long: `Print the elements of FILE, one row of the last dimension per
line, preceded by the index of the row.

Example:
  tensorinfo dump weights.tensor`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := arrayio.FromFile(args[0], e.options()...)
			if err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), a)
		},
	}
}

func dump(w io.Writer, a *arrayio.Array) error {
	b, err := a.Buffer()
	if err != nil {
		return err
	}
	shape := a.Shape()
	if _, err = fmt.Fprintf(w, "# %s %v\n", a.DType(), shape); err != nil {
		return err
	}

	data := reflect.ValueOf(b.Data())
	cols := shape[len(shape)-1]
	rowShape := shape[:len(shape)-1]
	idx := make([]int, len(rowShape))
	for lo := 0; lo < data.Len(); lo += cols {
		if len(idx) > 0 {
			if _, err = fmt.Fprint(w, idx, " "); err != nil {
				return err
			}
		}
		if _, err = fmt.Fprintln(w, data.Slice(lo, lo+cols).Interface()); err != nil {
			return err
		}
		for d := len(idx) - 1; d >= 0; d-- {
			if idx[d]++; idx[d] < rowShape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return nil
}
