/*
Copyright © 2023 Jeff Berkowitz (pdxjjb@gmail.com)

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gmofishsauce/hackvm/pkg/codegen"
	"github.com/gmofishsauce/hackvm/pkg/vm"
)

const replPrompt = "vm> "

var replFlags struct {
	module   string
	comments bool
}

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Translate VM commands typed on standard input",
	Long: `Repl reads VM commands one line at a time from standard input and
prints the Hack assembly for each as soon as the line is complete. It
prompts only when standard input is a terminal, so it can also be used
as a filter. Unlike translate, a bad line is reported and skipped. The
session state (label counters) carries over from line to line exactly
as it does within a file.`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		interactive := false
		if in == os.Stdin {
			interactive = term.IsTerminal(int(os.Stdin.Fd()))
		}
		logger.Printf("repl: module %s, interactive %v\n", replFlags.module, interactive)
		return repl(in, cmd.OutOrStdout(), cmd.ErrOrStderr(), interactive)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replFlags.module, "module", "Repl", "module name qualifying statics and return labels")
	replCmd.Flags().BoolVar(&replFlags.comments, "comments", false, "echo each command as a comment before its code")
}

func repl(in io.Reader, out io.Writer, errOut io.Writer, interactive bool) error {
	w := codegen.NewWriter(out, codegen.WithComments(replFlags.comments), codegen.WithLogger(logger))
	w.SetModule(replFlags.module)

	prompt := func() {
		if interactive {
			fmt.Fprint(out, replPrompt)
		}
	}

	reader := bufio.NewScanner(in)
	prompt()
	for reader.Scan() {
		cmd, ok, err := vm.ParseLine(reader.Text())
		if err == nil && ok {
			err = w.WriteCommand(cmd)
		}
		if err == nil {
			err = w.Flush()
		}
		if err != nil {
			if errors.Is(err, vm.ErrResource) {
				return err
			}
			fmt.Fprintln(errOut, err)
		}
		prompt()
	}
	if interactive {
		fmt.Fprintln(out)
	}
	return reader.Err()
}
