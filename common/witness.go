package common

import "github.com/nspcc-dev/neo-go/pkg/interop/runtime"

var (
	// ErrOwnerWitnessFailed appears when the method must be called
	// by the contract owner but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrTrainerWitnessFailed appears when the method must be called
	// by the trainer contract but was not.
	ErrTrainerWitnessFailed = "trainer witness check failed"
	// ErrWitnessFailed appears when the method must be called
	// by a certain account but was not.
	ErrWitnessFailed = "witness check failed"
)

// CheckOwnerWitness checks witness of the passed caller.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrOwnerWitnessFailed)
}

// CheckTrainerWitness checks witness of the passed caller. For a contract
// account the witness holds iff the account is the direct caller, which is
// how mutating ledger and incentive methods are fenced to the trainer.
// It panics with ErrTrainerWitnessFailed message on fail.
func CheckTrainerWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrTrainerWitnessFailed)
}

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrWitnessFailed)
}

func checkWitnessWithPanic(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}
