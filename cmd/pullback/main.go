// Package main provides the pullback CLI.
package main

import (
	"fmt"
	"log"
	"os"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("pullback %s\n", version)
	case "demo":
		runDemo()
	case "train":
		if err := runTrain(os.Args[2:]); err != nil {
			log.Fatalf("train: %v", err)
		}
	case "inspect":
		if err := runInspect(os.Args[2:]); err != nil {
			log.Fatalf("inspect: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("pullback - reverse-mode AD with explicit pullbacks")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Walk through composition, reflection and type erasure")
	fmt.Println("  train      Fit a small erased Dense-Tanh-Dense model (see train -h)")
	fmt.Println("  inspect    List the parameters in a SafeTensors file")
}
