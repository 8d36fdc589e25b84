package main

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/born-ml/pullback/internal/serialization"
)

// runInspect lists the parameters stored in a SafeTensors file.
func runInspect(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: pullback inspect <file.safetensors>")
	}

	dict, metadata, err := serialization.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(err, "reading %s", args[0])
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("# %s: %s\n", k, metadata[k])
	}

	names := make([]string, 0, len(dict))
	for name := range dict {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int
	for _, name := range names {
		t := dict[name]
		total += len(t.Data)
		fmt.Printf("%-16s %v\n", name, t.Shape)
	}
	fmt.Printf("%d tensors, %d parameters\n", len(names), total)
	return nil
}
