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

package translate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gmofishsauce/hackvm/pkg/vm"
)

const (
	sourceExt = ".vm"
	outputExt = ".asm"
)

// Module is one source file. Its name qualifies static variables and
// return labels, so it must be unique within a job.
type Module struct {
	Name string
	Path string
}

// Job is the work of one translation run.
type Job struct {
	Source  string // the path given by the user
	IsDir   bool
	Modules []Module
	Output  string
}

// Resolve finds the modules and output path for a source, which is
// either a single .vm file or a directory. A directory is searched
// recursively and its modules are taken in lexical order of their
// paths. An empty output selects the default: the file name with .asm
// in place of .vm, or <dir>/<dir>.asm for a directory.
func Resolve(source string, output string) (*Job, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", vm.ErrResource, err)
	}

	job := &Job{Source: source, IsDir: info.IsDir(), Output: output}
	if !job.IsDir {
		if filepath.Ext(source) != sourceExt {
			return nil, fmt.Errorf("%w: %s: not a %s file", vm.ErrResource, source, sourceExt)
		}
		job.Modules = []Module{{Name: moduleName(source), Path: source}}
		if job.Output == "" {
			job.Output = strings.TrimSuffix(source, sourceExt) + outputExt
		}
		return job, nil
	}

	err = filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && filepath.Ext(path) == sourceExt {
			job.Modules = append(job.Modules, Module{Name: moduleName(path), Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", vm.ErrResource, err)
	}
	if len(job.Modules) == 0 {
		return nil, fmt.Errorf("%w: %s: no %s files", vm.ErrResource, source, sourceExt)
	}

	seen := make(map[string]string)
	for _, m := range job.Modules {
		if other, dup := seen[m.Name]; dup {
			return nil, fmt.Errorf("%w: module %s defined by both %s and %s",
				vm.ErrResource, m.Name, other, m.Path)
		}
		seen[m.Name] = m.Path
	}

	if job.Output == "" {
		abs, err := filepath.Abs(source)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", vm.ErrResource, err)
		}
		job.Output = filepath.Join(source, filepath.Base(abs)+outputExt)
	}
	return job, nil
}

func moduleName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), sourceExt)
}
