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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gmofishsauce/hackvm/pkg/translate"
)

var translateFlags struct {
	output      string
	bootstrap   string
	comments    bool
	header      bool
	keepPartial bool
}

// translateCmd represents the translate command
var translateCmd = &cobra.Command{
	Use:   "translate source",
	Short: "Translate a .vm file or a directory of them to Hack assembly",
	Long: `Translate reads VM code and writes one Hack assembly file.

The source is either a single .vm file or a directory. A directory is
a whole program: every .vm file below it is translated, in lexical
order of path, into <dir>/<dir>.asm, and the output starts with the
bootstrap code that sets SP to 256 and calls Sys.init. A single file
is translated to the same name with .asm in place of .vm, without
bootstrap code. Both defaults can be changed with flags.

Translation stops at the first error. The partial output is removed
unless --keep-partial is given.
`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := translate.ParseBootstrapMode(translateFlags.bootstrap)
		if err != nil {
			return err
		}
		res, err := translate.Run(args[0], translate.Options{
			Output:      translateFlags.output,
			Bootstrap:   mode,
			Comments:    translateFlags.comments,
			Header:      translateFlags.header,
			KeepPartial: translateFlags.keepPartial,
			Logger:      logger,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d module(s), %d commands\n",
			res.Output, res.Modules, res.Commands)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	f := translateCmd.Flags()
	f.StringVarP(&translateFlags.output, "output", "o", "", "output file (default derived from source)")
	f.StringVar(&translateFlags.bootstrap, "bootstrap", "auto", "bootstrap code: auto (directories only), always, or never")
	f.BoolVar(&translateFlags.comments, "comments", true, "write each VM command as a comment before its code")
	f.BoolVar(&translateFlags.header, "header", true, "write a header comment naming the source")
	f.BoolVar(&translateFlags.keepPartial, "keep-partial", false, "keep the output file when translation fails")
}
