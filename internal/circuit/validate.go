package circuit

import "github.com/xtding233/qrng-backend/internal/qerr"

func validateQubits(op string, qubits int) error {
	if qubits < 1 {
		return qerr.InvalidParam(op, "qubits", qubits)
	}
	return nil
}
