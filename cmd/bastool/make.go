package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/retrocomp/bastool/bastoken"
)

var makeCmd = &cobra.Command{
	Use:   "make",
	Short: "Tokenize BASIC source text",
	Args:  cobra.NoArgs,
	RunE:  runMake,
}

func init() {
	makeCmd.Flags().StringP("file", "f", "", "source text to tokenize, stdin when omitted")
	makeCmd.Flags().StringP("out", "o", "", "tokenized program file to write")
	makeCmd.Flags().BoolP("library", "l", false, "produce a library, records carry no line numbers")
	makeCmd.Flags().Bool("reject-numbers", false, "fail on numbered source lines in library mode")
	makeCmd.MarkFlagRequired("out")
}

func runMake(cmd *cobra.Command, args []string) error {
	in, _ := cmd.Flags().GetString("file")
	out, _ := cmd.Flags().GetString("out")
	library, _ := cmd.Flags().GetBool("library")
	reject, _ := cmd.Flags().GetBool("reject-numbers")

	var src []byte
	var err error
	if in == "" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "reading program from terminal, end with ^D")
		}
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(in)
	}
	if err != nil {
		return err
	}

	prog, err := bastoken.Tokenize(string(src), bastoken.Options{
		Library:       library,
		RejectNumbers: reject,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(out, prog, 0644)
}
