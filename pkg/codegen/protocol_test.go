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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Generated code", func() {
	Context("arithmetic", func() {
		DescribeTable("leaves one result on the stack",
			func(src string, want int) {
				m := load(false, module{"Main", src})
				initRegisters(m)
				runToHalt(m)
				Expect(m.RAM[0]).To(BeEquivalentTo(257))
				Expect(m.RAM[256]).To(BeEquivalentTo(want))
			},
			Entry("add", "push constant 7\npush constant 8\nadd", 15),
			Entry("sub", "push constant 10\npush constant 3\nsub", 7),
			Entry("sub negative", "push constant 3\npush constant 10\nsub", -7),
			Entry("and", "push constant 12\npush constant 10\nand", 8),
			Entry("or", "push constant 12\npush constant 10\nor", 14),
			Entry("neg", "push constant 5\nneg", -5),
			Entry("not", "push constant 0\nnot", -1),
			Entry("eq true", "push constant 5\npush constant 5\neq", -1),
			Entry("eq false", "push constant 5\npush constant 6\neq", 0),
			Entry("gt true", "push constant 7\npush constant 3\ngt", -1),
			Entry("gt false", "push constant 3\npush constant 7\ngt", 0),
			Entry("gt equal", "push constant 3\npush constant 3\ngt", 0),
			Entry("lt true", "push constant 3\npush constant 7\nlt", -1),
			Entry("lt false", "push constant 7\npush constant 3\nlt", 0),
			Entry("lt equal", "push constant 3\npush constant 3\nlt", 0),
			Entry("gt negatives", "push constant 2\nneg\npush constant 5\nneg\ngt", -1),
			Entry("lt negative", "push constant 5\nneg\npush constant 2\nlt", -1),
		)

		It("keeps repeated comparisons apart", func() {
			m := load(false, module{"Main", `
				push constant 1
				push constant 1
				eq
				push constant 2
				push constant 3
				eq
				push constant 4
				push constant 4
				eq
			`})
			initRegisters(m)
			runToHalt(m)
			Expect(m.RAM[0]).To(BeEquivalentTo(259))
			Expect(m.RAM[256]).To(BeEquivalentTo(-1))
			Expect(m.RAM[257]).To(BeEquivalentTo(0))
			Expect(m.RAM[258]).To(BeEquivalentTo(-1))
		})
	})

	Context("memory segments", func() {
		It("adds into local 0", func() {
			m := load(false, module{"Main", "push constant 7\npush constant 8\nadd\npop local 0\n"})
			initRegisters(m)
			runToHalt(m)
			Expect(m.RAM[300]).To(BeEquivalentTo(15))
			Expect(m.RAM[0]).To(BeEquivalentTo(256))
		})

		It("round trips through a local", func() {
			m := load(false, module{"Main", "push local 2\npop local 2\n"})
			initRegisters(m)
			m.RAM[302] = 1234
			runToHalt(m)
			Expect(m.RAM[302]).To(BeEquivalentTo(1234))
			Expect(m.RAM[0]).To(BeEquivalentTo(256))
		})

		It("addresses every segment", func() {
			m := load(false, module{"Main", `
				push constant 10
				pop local 1
				push constant 20
				pop argument 2
				push constant 30
				pop this 3
				push constant 40
				pop that 4
				push constant 50
				pop temp 6
				push constant 3100
				pop pointer 1
				push constant 60
				pop that 0
				push local 1
				push argument 2
				add
				push temp 6
				add
				push pointer 1
			`})
			initRegisters(m)
			runToHalt(m)
			Expect(m.RAM[301]).To(BeEquivalentTo(10))
			Expect(m.RAM[402]).To(BeEquivalentTo(20))
			Expect(m.RAM[3003]).To(BeEquivalentTo(30))
			Expect(m.RAM[3014]).To(BeEquivalentTo(40))
			Expect(m.RAM[11]).To(BeEquivalentTo(50))
			Expect(m.RAM[4]).To(BeEquivalentTo(3100))
			Expect(m.RAM[3100]).To(BeEquivalentTo(60))
			Expect(m.RAM[0]).To(BeEquivalentTo(258))
			Expect(m.RAM[256]).To(BeEquivalentTo(80))
			Expect(m.RAM[257]).To(BeEquivalentTo(3100))
		})

		It("gives each module its own statics", func() {
			m := load(false,
				module{"A", "push constant 11\npop static 0\n"},
				module{"B", "push constant 22\npop static 0\npush static 0\n"},
			)
			initRegisters(m)
			runToHalt(m)
			a, ok := m.Symbol("A.0")
			Expect(ok).To(BeTrue())
			b, ok := m.Symbol("B.0")
			Expect(ok).To(BeTrue())
			Expect(a).NotTo(Equal(b))
			Expect(m.Peek("A.0")).To(BeEquivalentTo(11))
			Expect(m.Peek("B.0")).To(BeEquivalentTo(22))
			Expect(m.RAM[256]).To(BeEquivalentTo(22))
		})
	})

	Context("branching", func() {
		It("treats any nonzero value as true", func() {
			m := load(false, module{"Main", `
				push constant 2
				if-goto T1
				push constant 111
				pop temp 0
				label T1
				push constant 1
				neg
				if-goto T2
				push constant 222
				pop temp 1
				label T2
				push constant 0
				if-goto T3
				push constant 333
				pop temp 2
				label T3
			`})
			initRegisters(m)
			runToHalt(m)
			Expect(m.RAM[5]).To(BeEquivalentTo(0))
			Expect(m.RAM[6]).To(BeEquivalentTo(0))
			Expect(m.RAM[7]).To(BeEquivalentTo(333))
			Expect(m.RAM[0]).To(BeEquivalentTo(256))
		})

		It("loops", func() {
			// sum 1..5 in local 0, counter in local 1
			m := load(false, module{"Main", `
				push constant 5
				pop local 1
				label LOOP
				push local 0
				push local 1
				add
				pop local 0
				push local 1
				push constant 1
				sub
				pop local 1
				push local 1
				if-goto LOOP
			`})
			initRegisters(m)
			runToHalt(m)
			Expect(m.RAM[300]).To(BeEquivalentTo(15))
			Expect(m.RAM[0]).To(BeEquivalentTo(256))
		})
	})

	Context("call and return", func() {
		expectCallerRestored := func(m interface{ Peek(string) int16 }) {
			Expect(m.Peek("LCL")).To(BeEquivalentTo(300))
			Expect(m.Peek("ARG")).To(BeEquivalentTo(400))
			Expect(m.Peek("THIS")).To(BeEquivalentTo(3000))
			Expect(m.Peek("THAT")).To(BeEquivalentTo(3010))
		}

		It("replaces k arguments with one return value", func() {
			m := load(false, module{"Main", `
				push constant 1
				push constant 2
				push constant 3
				call Sum.three 3
				goto END
				function Sum.three 1
				push argument 0
				push argument 1
				add
				push argument 2
				add
				pop local 0
				push constant 5000
				pop pointer 0
				push local 0
				return
				label END
			`})
			initRegisters(m)
			runToHalt(m)
			Expect(m.RAM[0]).To(BeEquivalentTo(259 - 3 + 1))
			Expect(m.RAM[256]).To(BeEquivalentTo(6))
			expectCallerRestored(m)
		})

		It("returns from a function with locals and no arguments", func() {
			m := load(false, module{"Main", `
				call Foo 0
				goto END
				function Foo 2
				return
				label END
			`})
			initRegisters(m)
			runToHalt(m)
			Expect(m.RAM[0]).To(BeEquivalentTo(257))
			Expect(m.RAM[256]).To(BeEquivalentTo(0))
			expectCallerRestored(m)
		})

		It("zeroes locals", func() {
			m := load(false, module{"Main", `
				call Foo 0
				goto END
				function Foo 3
				push local 0
				push local 1
				or
				push local 2
				or
				return
				label END
			`})
			initRegisters(m)
			for a := 256; a < 280; a++ {
				m.RAM[a] = -1
			}
			runToHalt(m)
			Expect(m.RAM[256]).To(BeEquivalentTo(0))
			Expect(m.RAM[0]).To(BeEquivalentTo(257))
		})
	})

	Context("bootstrap", func() {
		It("runs a recursive program across modules", func() {
			m := load(true,
				module{"Main", `
					function Main.fib 0
					push argument 0
					push constant 2
					lt
					if-goto BASE
					push argument 0
					push constant 1
					sub
					call Main.fib 1
					push argument 0
					push constant 2
					sub
					call Main.fib 1
					add
					return
					label BASE
					push argument 0
					return
				`},
				module{"Sys", `
					function Sys.init 0
					push constant 10
					call Main.fib 1
					pop static 0
					label HALT
					goto HALT
				`},
			)
			halted, err := m.Run(200000)
			Expect(err).NotTo(HaveOccurred())
			Expect(halted).To(BeFalse())
			Expect(m.Peek("Sys.0")).To(BeEquivalentTo(55))
			// Sys.init's frame sits on top of the initial stack.
			Expect(m.RAM[0]).To(BeEquivalentTo(261))
			Expect(m.RAM[1]).To(BeEquivalentTo(261))
		})
	})
})
