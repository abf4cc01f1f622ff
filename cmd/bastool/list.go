package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/retrocomp/bastool/bastoken"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Detokenize a tokenized program file",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringP("file", "f", "", "tokenized program to list")
	listCmd.Flags().StringP("out", "o", "", "write the listing to this file instead of stdout")
	listCmd.Flags().BoolP("numbers", "n", false, "synthesize line numbers for library files")
	listCmd.Flags().Int("base", 10, "first synthesized line number")
	listCmd.Flags().Int("step", 10, "synthesized line number increment")
	listCmd.MarkFlagRequired("file")
}

func runList(cmd *cobra.Command, args []string) error {
	in, _ := cmd.Flags().GetString("file")
	out, _ := cmd.Flags().GetString("out")
	numbers, _ := cmd.Flags().GetBool("numbers")
	base, _ := cmd.Flags().GetInt("base")
	step, _ := cmd.Flags().GetInt("step")

	prog, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	text, err := bastoken.Detokenize(prog, bastoken.ListOptions{
		SynthesizeNumbers: numbers,
		NumberBase:        base,
		NumberStep:        step,
	})
	if err != nil {
		return err
	}

	if out == "" {
		_, err = cmd.OutOrStdout().Write([]byte(text))
		return err
	}
	return os.WriteFile(out, []byte(text), 0644)
}
