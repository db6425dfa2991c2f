package main

import (
	"fmt"
	"io"

	sonic "github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

// report prints v as indented JSON with --json, or through text otherwise.
func (rt *runtime) report(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if !rt.jsonOutput {
		text(w)
		return nil
	}
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
