// Package circuit describes measurement circuits as immutable value
// objects. Builders produce the specs; execution belongs to a backend.
package circuit

// GateKind identifies a supported gate.
type GateKind string

const (
	GateH  GateKind = "h"  // Hadamard, puts a qubit into equal superposition
	GateX  GateKind = "x"  // Pauli-X, flips a basis state
	GateS  GateKind = "s"  // π/2 phase shift
	GateT  GateKind = "t"  // π/4 phase shift
	GateCX GateKind = "cx" // controlled-NOT; targets = [control, target]
)

// Gate is one gate application with its target qubit indices.
type Gate struct {
	Kind    GateKind
	Targets []int
}

// Spec is an immutable circuit description: qubit count, ordered gate
// sequence and the set of measured qubits. Accessors return copies so
// a built spec cannot be mutated by callers.
type Spec struct {
	qubits   int
	gates    []Gate
	measured []int
}

// Qubits reports the number of qubits in the circuit.
func (s *Spec) Qubits() int { return s.qubits }

// Gates returns the ordered gate sequence.
func (s *Spec) Gates() []Gate {
	out := make([]Gate, len(s.gates))
	for i, g := range s.gates {
		t := make([]int, len(g.Targets))
		copy(t, g.Targets)
		out[i] = Gate{Kind: g.Kind, Targets: t}
	}
	return out
}

// Measured returns the measured qubit indices in ascending order.
func (s *Spec) Measured() []int {
	out := make([]int, len(s.measured))
	copy(out, s.measured)
	return out
}
