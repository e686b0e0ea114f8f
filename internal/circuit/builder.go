package circuit

import (
	"github.com/xtding233/qrng-backend/internal/qerr"
)

// NewRandomCircuit builds the randomness-generation circuit: a
// Hadamard gate on every qubit, then measurement of every qubit.
func NewRandomCircuit(qubits int) (*Spec, error) {
	if err := validateQubits("new random circuit", qubits); err != nil {
		return nil, err
	}
	gates := make([]Gate, 0, qubits)
	for q := 0; q < qubits; q++ {
		gates = append(gates, Gate{Kind: GateH, Targets: []int{q}})
	}
	return &Spec{qubits: qubits, gates: gates, measured: measureAll(qubits)}, nil
}

// NewCalibrationCircuit builds a self-test circuit that prepares the
// given basis state (X gate per '1') and measures it, with no
// superposition gate. Measurement must report the prepared state
// verbatim; anything else means the measurement path is broken.
func NewCalibrationCircuit(qubits int, prepared string) (*Spec, error) {
	const op = "new calibration circuit"
	if err := validateQubits(op, qubits); err != nil {
		return nil, err
	}
	if len(prepared) != qubits {
		return nil, qerr.InvalidParam(op, "prepared", prepared)
	}
	var gates []Gate
	for q, c := range prepared {
		switch c {
		case '1':
			gates = append(gates, Gate{Kind: GateX, Targets: []int{q}})
		case '0':
		default:
			return nil, qerr.InvalidParam(op, "prepared", prepared)
		}
	}
	return &Spec{qubits: qubits, gates: gates, measured: measureAll(qubits)}, nil
}

// NewEntangledCircuit builds the variant generator: Hadamard on every
// qubit, a CNOT chain entangling neighbours, and S/T phase shifts on
// the first and third qubits. Outcomes stay uniform; the circuit
// exercises the multi-qubit gate path.
func NewEntangledCircuit(qubits int) (*Spec, error) {
	if err := validateQubits("new entangled circuit", qubits); err != nil {
		return nil, err
	}
	gates := make([]Gate, 0, 2*qubits)
	for q := 0; q < qubits; q++ {
		gates = append(gates, Gate{Kind: GateH, Targets: []int{q}})
	}
	for q := 0; q+1 < qubits; q++ {
		gates = append(gates, Gate{Kind: GateCX, Targets: []int{q, q + 1}})
	}
	gates = append(gates, Gate{Kind: GateS, Targets: []int{0}})
	if qubits > 2 {
		gates = append(gates, Gate{Kind: GateT, Targets: []int{2}})
	}
	return &Spec{qubits: qubits, gates: gates, measured: measureAll(qubits)}, nil
}

func measureAll(qubits int) []int {
	m := make([]int, qubits)
	for q := range m {
		m[q] = q
	}
	return m
}
