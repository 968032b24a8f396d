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
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var (
	verbose bool
	logFile string

	// Progress messages. Discarded unless --verbose or --log-file.
	logger = log.New(io.Discard, "", 0)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hackvm",
	Short: "Translator from VM code to Hack assembly",
	Long: `Hackvm is the back end of the Jack toolchain. It translates the
stack machine language produced by the compiler ("VM code") into
assembly language for the 16-bit Hack computer. The output is read by
a separate assembler.`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to standard error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append progress messages to this file")
}

func setupLogging() error {
	var out io.Writer
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		atexit.Register(func() {
			f.Close()
		})
		out = f
		if verbose {
			out = io.MultiWriter(f, os.Stderr)
		}
	case verbose:
		out = os.Stderr
	default:
		return nil
	}
	logger = log.New(out, "hackvm: ", log.Lmsgprefix|log.Lmicroseconds)
	logger.Println("firing up")
	return nil
}
