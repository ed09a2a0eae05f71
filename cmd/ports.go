package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"go-pianoroll/midi"
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI ports",
	Long:  `Lists the MIDI input and output ports. Use a distinctive part of a name with --port or --input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer midi.CloseDriver()
		ins, outs, err := midi.Ports()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		printPorts(w, "Outputs", outs)
		printPorts(w, "Inputs", ins)
		return nil
	},
}

func printPorts(w io.Writer, title string, names []string) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(names) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for i, name := range names {
		fmt.Fprintf(w, "  %d: %s\n", i, name)
	}
}
