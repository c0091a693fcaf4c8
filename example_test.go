// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arrayio_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/nlpodyssey/arrayio"
)

func ExampleArray_Save() {
	dir, err := os.MkdirTemp("", "arrayio-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	a, err := arrayio.FromSlice([]int8{1, 2, 3, 4, 5, 6}, 2, 3)
	if err != nil {
		log.Fatal(err)
	}
	path := filepath.Join(dir, "example.tensor")
	if err = a.Save(path); err != nil {
		log.Fatal(err)
	}

	loaded, err := arrayio.FromFile(path)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("dtype = %s\n", loaded.DType())
	fmt.Printf("shape = %v\n", loaded.Shape())
	fmt.Printf("loaded = %v\n", loaded.IsLoaded())

	view, err := arrayio.Get[float32](loaded, 2)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("loaded = %v\n", loaded.IsLoaded())
	fmt.Printf("data = %v\n", view.Data())
	fmt.Printf("(1, 2) = %v\n", view.At(1, 2))

	// Output:
	// dtype = int8
	// shape = [2 3]
	// loaded = false
	// loaded = true
	// data = [1 2 3 4 5 6]
	// (1, 2) = 6
}

func ExampleFromFile_legacy() {
	a, err := arrayio.FromFile(filepath.Join("testdata", "tensor_char.tensor"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("variant = %s\n", a.Variant())
	fmt.Printf("%s\n", a)

	view, err := arrayio.Get[int8](a, 2)
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		fmt.Println(view.Data()[i*4 : i*4+4])
	}

	// Output:
	// variant = legacy
	// Array(int8 [3 4], testdata/tensor_char.tensor)
	// [0 1 2 3]
	// [4 5 6 7]
	// [8 9 10 11]
}
