// Package main provides the course companion CLI.
package main

import (
	"fmt"
	"os"

	"github.com/armelito60/IntroToDLPyTorch/internal/serialization"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("IntroToDL %s\n", version)
			return
		case "inspect":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "usage: introdl inspect <file.ckpt>")
				os.Exit(2)
			}
			if err := inspect(os.Args[2]); err != nil {
				fmt.Fprintln(os.Stderr, "inspect:", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("IntroToDL - deep learning fundamentals in Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version          Show version")
	fmt.Println("  inspect <file>   Dump a checkpoint's header")
	fmt.Println("")
	fmt.Println("Lessons (go run ./examples/...):")
	fmt.Println("  perceptron-gates   Perceptrons as logical operators")
	fmt.Println("  gradient-descent   Logistic regression by hand")
	fmt.Println("  mnist-mlp          Train an image classifier")
	fmt.Println("  checkpoint         Save, restore, and break a model")
}

func inspect(path string) error {
	f, err := serialization.Open(path)
	if err != nil {
		return err
	}

	h := f.Header
	fmt.Printf("%s (format v%d, created %s)\n", path, h.FormatVersion, h.CreatedAt.Format("2006-01-02 15:04:05"))
	if h.Arch != nil {
		fmt.Printf("architecture: input %d, hidden %v, output %d, dropout %.2f\n",
			h.Arch.InputSize, h.Arch.HiddenSizes, h.Arch.OutputSize, h.Arch.Dropout)
	}
	if h.Checkpoint != nil {
		fmt.Printf("checkpoint: epoch %d, step %d, loss %.4f", h.Checkpoint.Epoch, h.Checkpoint.Step, h.Checkpoint.Loss)
		if h.Checkpoint.OptimizerType != "" {
			fmt.Printf(", optimizer %s %v", h.Checkpoint.OptimizerType, h.Checkpoint.OptimizerConfig)
		}
		fmt.Println()
	}

	fmt.Printf("tensors (%d):\n", len(h.Tensors))
	for _, t := range h.Tensors {
		fmt.Printf("  %-24s %-8s %v (%d bytes)\n", t.Name, t.DType, t.Shape, t.Size)
	}
	return nil
}
