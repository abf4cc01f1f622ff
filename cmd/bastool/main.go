package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "bastool",
	Short:         "Tokenize and list BASIC programs",
	Long:          "bastool converts BASIC source text to the tokenized binary form the interpreter loads, and lists tokenized programs back as text.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(makeCmd)

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "bastool: %v\n", err)
		os.Exit(1)
	}
}
