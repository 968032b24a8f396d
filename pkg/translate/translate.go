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

// Package translate drives a translation run: it finds the source
// modules, feeds their commands to the code generator in order, and
// owns the output file.
package translate

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gmofishsauce/hackvm/pkg/codegen"
	"github.com/gmofishsauce/hackvm/pkg/vm"
)

// CommandWriter consumes the command stream. codegen.Writer is one.
type CommandWriter interface {
	SetModule(name string)
	WriteBootstrap() error
	WriteCommand(cmd vm.Command) error
}

// BootstrapMode selects when the bootstrap code is written.
type BootstrapMode int

const (
	// Bootstrap directories (whole programs) but not single files.
	BootstrapAuto BootstrapMode = iota
	BootstrapAlways
	BootstrapNever
)

var bootstrapModeToString = []string{"auto", "always", "never"}

func (bm BootstrapMode) String() string {
	if bm < 0 || int(bm) >= len(bootstrapModeToString) {
		return fmt.Sprintf("BootstrapMode(%d)", int(bm))
	}
	return bootstrapModeToString[bm]
}

// ParseBootstrapMode is the inverse of String.
func ParseBootstrapMode(s string) (BootstrapMode, error) {
	for i, name := range bootstrapModeToString {
		if s == name {
			return BootstrapMode(i), nil
		}
	}
	return BootstrapAuto, fmt.Errorf("bootstrap mode must be auto, always, or never: %q", s)
}

// Bootstrap reports whether the job gets bootstrap code under mode.
func (job *Job) Bootstrap(mode BootstrapMode) bool {
	switch mode {
	case BootstrapAlways:
		return true
	case BootstrapNever:
		return false
	}
	return job.IsDir
}

// Options configure Run. The zero value is usable, with comments off.
type Options struct {
	Output      string // overrides the default output path
	Bootstrap   BootstrapMode
	Comments    bool // a "// command" line before each block
	Header      bool // a header comment naming the source
	KeepPartial bool // leave the output file in place after a failure
	Logger      *log.Logger
}

// Result summarizes a successful run.
type Result struct {
	Output   string
	Modules  int
	Commands int
}

// Translate feeds every command of the job's modules to w, module by
// module, setting the module name before each. It stops at the first
// error. It returns the number of commands written.
func Translate(w CommandWriter, job *Job, bootstrap bool, logger *log.Logger) (int, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if bootstrap {
		if err := w.WriteBootstrap(); err != nil {
			return 0, err
		}
	}
	total := 0
	for _, m := range job.Modules {
		n, err := translateModule(w, m)
		total += n
		if err != nil {
			return total, err
		}
		logger.Printf("%s: %d commands\n", m.Path, n)
	}
	return total, nil
}

func translateModule(w CommandWriter, m Module) (int, error) {
	p, err := vm.Open(m.Path)
	if err != nil {
		return 0, err
	}
	defer p.Close()

	w.SetModule(m.Name)
	n := 0
	for p.Scan() {
		if err := w.WriteCommand(p.Command()); err != nil {
			return n, fmt.Errorf("%s:%d: %w", p.Name(), p.Line(), err)
		}
		n++
	}
	return n, p.Err()
}

// Run translates source, a .vm file or a directory of them, into one
// assembly file. The output file is closed on every path out of Run;
// after a failure it is also removed unless opts.KeepPartial is set.
func Run(source string, opts Options) (result *Result, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	job, err := Resolve(source, opts.Output)
	if err != nil {
		return nil, err
	}
	logger.Printf("%s: %d module(s) -> %s\n", source, len(job.Modules), job.Output)

	f, err := os.Create(job.Output)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", vm.ErrResource, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %s", vm.ErrResource, cerr)
		}
		if err != nil && !opts.KeepPartial {
			logger.Printf("removing %s\n", job.Output)
			os.Remove(job.Output)
		}
	}()

	wopts := []codegen.Option{codegen.WithComments(opts.Comments), codegen.WithLogger(logger)}
	if opts.Header {
		wopts = append(wopts, codegen.WithHeader("generated by hackvm from "+source))
	}
	w := codegen.NewWriter(f, wopts...)

	n, err := Translate(w, job, job.Bootstrap(opts.Bootstrap), logger)
	if err != nil {
		// Flush what there is so that a kept partial file shows where
		// translation stopped.
		w.Flush()
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return &Result{Output: job.Output, Modules: len(job.Modules), Commands: n}, nil
}
