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

package vm

import (
	"errors"
	"fmt"
)

// Every failure of a translation session is one of these. They are
// wrapped with context, so test for them with errors.Is.
var (
	// The parser saw a mnemonic that is not in the table.
	ErrUnrecognisedMnemonic = errors.New("unrecognised mnemonic")
	// Wrong token count, or a number where none can be parsed.
	ErrMalformedArity = errors.New("malformed command")
	// The generator has no code for a command. Either the parser let
	// something through that it shouldn't, or the segment index is
	// outside what the machine allows.
	ErrUnrecognisedCommand = errors.New("unrecognised command")
	// Input unreadable or output unwritable.
	ErrResource = errors.New("resource error")
)

// SyntaxError locates a parse failure in the source.
type SyntaxError struct {
	Source string // file or other source name
	Line   int    // 1-based line number
	Text   string // the offending line, comment and whitespace stripped
	Err    error  // one of the sentinels above, possibly wrapped
}

func (e *SyntaxError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("line %d: %q: %s", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("%s:%d: %q: %s", e.Source, e.Line, e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
