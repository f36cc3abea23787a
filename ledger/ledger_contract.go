package ledger

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/cotrain-labs/cotrain-contract/common"
)

type (
	// Contribution is an escrow record of a single submitted sample.
	Contribution struct {
		// Script hash of the submitter account.
		Submitter interop.Hash160
		// Label the submitter attached to the sample.
		Label int
		// Block time of the submission.
		Time int
		// Deposit escrowed at submission.
		InitialDeposit int
		// Portion of the deposit not paid out yet.
		Claimable int
		// Amount of refund and report claims accepted so far.
		NumClaims int
	}

	// RefundClaim is returned by ClaimRefund and carries the record state
	// observed right before the claim was applied.
	RefundClaim struct {
		Claimable      int
		AlreadyClaimed bool
		NumClaims      int
	}

	// ReportClaim is returned by ClaimReport and carries the record state
	// observed right before the claim was applied.
	ReportClaim struct {
		Key            []byte
		InitialDeposit int
		Claimable      int
		AlreadyClaimed bool
		NumClaims      int
	}
)

const (
	// ErrNotFound is thrown when there is no contribution under the key.
	ErrNotFound = "contribution not found"
	// ErrMismatch is thrown when stored contribution attributes differ
	// from the ones passed for re-validation.
	ErrMismatch = "contribution attributes mismatch"
	// ErrKeyCollision is thrown when a live contribution is already
	// stored under the key.
	ErrKeyCollision = "live contribution already stored under the key"
	// ErrInvalidKey is thrown when contribution key is not a slice of 32 bytes.
	ErrInvalidKey = "invalid contribution key"
	// ErrInvalidSubmitter is thrown when an account has invalid format.
	ErrInvalidSubmitter = "invalid account"
	// ErrNegativeAmount is thrown on negative deposit, time or debit amount.
	ErrNegativeAmount = "negative amount"
	// ErrInsufficientBalance is thrown when debit exceeds the claimable amount.
	ErrInsufficientBalance = "debit exceeds claimable amount"
)

const (
	contributionKeySize = 32 // SHA256 size

	contributionPrefix = 'c'
	claimedPrefix      = 'm'

	trainerContractKey = "trainerScriptHash"
)

// nolint:deadcode,unused
func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner   interop.Hash160
		trainer interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len || len(args.trainer) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}

	storage.Put(ctx, common.OwnerKey, args.owner)
	storage.Put(ctx, trainerContractKey, args.trainer)

	runtime.Log("ledger contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	if !common.HasUpdateAccess(ctx) {
		panic("only owner can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("ledger contract updated")
}

// SetTrainer changes the trainer contract allowed to mutate the ledger.
// Can be invoked only by the contract owner.
func SetTrainer(addr interop.Hash160) {
	ctx := storage.GetContext()
	if !common.HasUpdateAccess(ctx) {
		panic(common.ErrOwnerWitnessFailed)
	}
	if len(addr) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, trainerContractKey, addr)
}

// Trainer returns the script hash of the trainer contract.
func Trainer() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, trainerContractKey).(interop.Hash160)
}

// Record creates an escrow record for a new contribution under the key.
// A record may be created iff no live record occupies the key: a record is
// live while its submitter is set and its claimable amount is above zero.
// Drained records are kept for audit and may be overwritten by a fresh
// submission of the same tuple.
//
// Produces ContributionAdded notification. Can be invoked only by the
// trainer contract.
func Record(key []byte, label int, time int, submitter interop.Hash160, deposit int) {
	ctx := storage.GetContext()
	checkTrainer(ctx)

	if len(key) != contributionKeySize {
		panic(ErrInvalidKey)
	}
	if len(submitter) != interop.Hash160Len {
		panic(ErrInvalidSubmitter)
	}
	if label < 0 || time < 0 || deposit < 0 {
		panic(ErrNegativeAmount)
	}

	stKey := contributionKey(key)
	data := storage.Get(ctx, stKey)
	if data != nil {
		prev := std.Deserialize(data.([]byte)).(Contribution)
		if len(prev.Submitter) == interop.Hash160Len && prev.Claimable > 0 {
			panic(ErrKeyCollision)
		}
	}

	c := Contribution{
		Submitter:      submitter,
		Label:          label,
		Time:           time,
		InitialDeposit: deposit,
		Claimable:      deposit,
		NumClaims:      0,
	}
	common.SetSerialized(ctx, stKey, c)

	runtime.Notify("ContributionAdded", key, submitter, label, time, deposit)
}

// GetClaimableAmount returns the not-yet-paid-out part of the deposit of
// the contribution stored under the key. Passed attributes are re-validated
// against the stored record to guard against commitment collisions.
func GetClaimableAmount(key []byte, label int, time int, submitter interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	c := mustGetContribution(ctx, key)
	checkAttributes(c, label, time, submitter)

	return c.Claimable
}

// GetInitialDeposit returns the deposit escrowed at submission of the
// contribution stored under the key.
func GetInitialDeposit(key []byte, label int, time int, submitter interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	c := mustGetContribution(ctx, key)
	checkAttributes(c, label, time, submitter)

	return c.InitialDeposit
}

// GetNumClaims returns the amount of accepted claims against the
// contribution stored under the key.
func GetNumClaims(key []byte, label int, time int, submitter interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	c := mustGetContribution(ctx, key)
	checkAttributes(c, label, time, submitter)

	return c.NumClaims
}

// HasClaimed returns true if the claimant has already had a claim accepted
// against the contribution stored under the key.
func HasClaimed(key []byte, label int, time int, submitter interop.Hash160, claimant interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	c := mustGetContribution(ctx, key)
	checkAttributes(c, label, time, submitter)

	return hasClaimedRaw(ctx, key, claimant)
}

// ClaimRefund drains the remaining claimable amount of the contribution,
// marks the claimant and increments the claim counter. Returned values
// reflect the record as it was right before the mutation, so the incentive
// contract can adjudicate them; adjudication failure faults the transaction
// and rolls the mutation back. Partial refunds are not supported.
//
// Produces RefundIssued notification. Can be invoked only by the trainer
// contract.
func ClaimRefund(key []byte, claimant interop.Hash160) RefundClaim {
	ctx := storage.GetContext()
	checkTrainer(ctx)

	if len(claimant) != interop.Hash160Len {
		panic(ErrInvalidSubmitter)
	}

	c := mustGetContribution(ctx, key)
	res := RefundClaim{
		Claimable:      c.Claimable,
		AlreadyClaimed: hasClaimedRaw(ctx, key, claimant),
		NumClaims:      c.NumClaims,
	}

	c.Claimable = 0
	c.NumClaims = res.NumClaims + 1
	common.SetSerialized(ctx, contributionKey(key), c)
	markClaimed(ctx, key, claimant)

	runtime.Notify("RefundIssued", key, claimant, res.Claimable, c.NumClaims)

	return res
}

// ClaimReport marks the claimant and increments the claim counter of the
// contribution, leaving the claimable amount untouched: the adjudicated
// reward is taken separately via Debit. Returned values reflect the record
// as it was right before the mutation.
//
// Can be invoked only by the trainer contract.
func ClaimReport(key []byte, claimant interop.Hash160) ReportClaim {
	ctx := storage.GetContext()
	checkTrainer(ctx)

	if len(claimant) != interop.Hash160Len {
		panic(ErrInvalidSubmitter)
	}

	c := mustGetContribution(ctx, key)
	res := ReportClaim{
		Key:            key,
		InitialDeposit: c.InitialDeposit,
		Claimable:      c.Claimable,
		AlreadyClaimed: hasClaimedRaw(ctx, key, claimant),
		NumClaims:      c.NumClaims,
	}

	c.NumClaims = res.NumClaims + 1
	common.SetSerialized(ctx, contributionKey(key), c)
	markClaimed(ctx, key, claimant)

	return res
}

// Debit reduces the claimable amount of the contribution by the given
// amount using checked subtraction. Can be invoked only by the trainer
// contract.
func Debit(key []byte, amount int) {
	ctx := storage.GetContext()
	checkTrainer(ctx)

	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	c := mustGetContribution(ctx, key)
	if amount > c.Claimable {
		panic(ErrInsufficientBalance)
	}

	c.Claimable = c.Claimable - amount
	common.SetSerialized(ctx, contributionKey(key), c)
}

// Get returns the contribution stored under the key.
func Get(key []byte) Contribution {
	ctx := storage.GetReadOnlyContext()
	return mustGetContribution(ctx, key)
}

// Contributions returns an iterator over all stored contribution keys.
func Contributions() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{contributionPrefix}, storage.KeysOnly|storage.RemovePrefix)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkTrainer(ctx storage.Context) {
	trainer := storage.Get(ctx, trainerContractKey).(interop.Hash160)
	common.CheckTrainerWitness(trainer)
}

func checkAttributes(c Contribution, label int, time int, submitter interop.Hash160) {
	if c.Label != label || c.Time != time || !common.BytesEqual(c.Submitter, submitter) {
		panic(ErrMismatch)
	}
}

func mustGetContribution(ctx storage.Context, key []byte) Contribution {
	if len(key) != contributionKeySize {
		panic(ErrInvalidKey)
	}

	data := storage.Get(ctx, contributionKey(key))
	if data == nil {
		panic(ErrNotFound)
	}

	return std.Deserialize(data.([]byte)).(Contribution)
}

func contributionKey(key []byte) []byte {
	return append([]byte{contributionPrefix}, key...)
}

func claimedKey(key []byte, claimant interop.Hash160) []byte {
	stKey := append([]byte{claimedPrefix}, key...)
	return append(stKey, claimant...)
}

func hasClaimedRaw(ctx storage.Context, key []byte, claimant interop.Hash160) bool {
	return storage.Get(ctx, claimedKey(key, claimant)) != nil
}

func markClaimed(ctx storage.Context, key []byte, claimant interop.Hash160) {
	storage.Put(ctx, claimedKey(key, claimant), []byte{1})
}
