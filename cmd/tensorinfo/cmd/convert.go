// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/nlpodyssey/arrayio"
	"github.com/spf13/cobra"
)

func newConvertCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "convert SRC DST",
		Short: "Rewrite an array file",
		Long: `Read SRC and write it to DST, with the codec claiming the DST
extension. Legacy files are rewritten in the current layout.

Example:
  tensorinfo convert old.tensor new.tensor`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			a, err := arrayio.FromFile(src, e.options()...)
			if err != nil {
				return err
			}
			if err = a.Save(dst); err != nil {
				return err
			}
			cmd.Printf("%s (%s) -> %s\n", src, a.Variant(), dst)
			return nil
		},
	}
}
