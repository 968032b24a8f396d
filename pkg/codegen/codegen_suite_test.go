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
package codegen_test

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gmofishsauce/hackvm/pkg/codegen"
	"github.com/gmofishsauce/hackvm/pkg/hackemu"
	"github.com/gmofishsauce/hackvm/pkg/vm"
)

func TestCodegen(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Codegen Suite")
}

type module struct {
	name string
	src  string
}

// Translate the modules into one program and load it into a machine.
func load(bootstrap bool, modules ...module) *hackemu.Machine {
	var out bytes.Buffer
	w := codegen.NewWriter(&out)
	if bootstrap {
		Expect(w.WriteBootstrap()).To(Succeed())
	}
	for _, m := range modules {
		cmds, err := vm.ParseAll(m.name, strings.NewReader(m.src))
		Expect(err).NotTo(HaveOccurred())
		w.SetModule(m.name)
		for _, c := range cmds {
			Expect(w.WriteCommand(c)).To(Succeed())
		}
	}
	Expect(w.Flush()).To(Succeed())

	prog, err := hackemu.Assemble(&out)
	Expect(err).NotTo(HaveOccurred())
	return hackemu.NewMachine(prog)
}

// Standard register setup for programs run without the bootstrap.
func initRegisters(m *hackemu.Machine) {
	m.RAM[0] = 256  // SP
	m.RAM[1] = 300  // LCL
	m.RAM[2] = 400  // ARG
	m.RAM[3] = 3000 // THIS
	m.RAM[4] = 3010 // THAT
}

func runToHalt(m *hackemu.Machine) {
	halted, err := m.Run(100000)
	Expect(err).NotTo(HaveOccurred())
	Expect(halted).To(BeTrue())
}
