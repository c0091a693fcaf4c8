// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tensorinfo inspects, converts and dumps array files.
package main

import "github.com/nlpodyssey/arrayio/cmd/tensorinfo/cmd"

func main() {
	cmd.Execute()
}
