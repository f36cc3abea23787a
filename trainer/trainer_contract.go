package trainer

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/cotrain-labs/cotrain-contract/common"
)

type (
	// refundClaim mirrors the structure returned by the ledger contract
	// on claimRefund.
	refundClaim struct {
		claimable      int
		alreadyClaimed bool
		numClaims      int
	}

	// reportClaim mirrors the structure returned by the ledger contract
	// on claimReport.
	reportClaim struct {
		key            []byte
		initialDeposit int
		claimable      int
		alreadyClaimed bool
		numClaims      int
	}
)

const (
	// ErrEmptySample is thrown when the submitted sample is empty.
	ErrEmptySample = "empty sample"
	// ErrTransferFailed is thrown when a GAS transfer does not succeed.
	ErrTransferFailed = "failed to transfer funds, aborting"

	ledgerContractKey     = "ledgerScriptHash"
	incentiveContractKey  = "incentiveScriptHash"
	classifierContractKey = "classifierScriptHash"
)

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Escrowed deposits and swept rewards pass through the contract account, so
// only GAS is accepted.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		panic("onNEP17Payment: trainer contract accepts GAS only")
	}
}

// nolint:deadcode,unused
func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner          interop.Hash160
		addrLedger     interop.Hash160
		addrIncentive  interop.Hash160
		addrClassifier interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if len(args.addrLedger) != interop.Hash160Len ||
		len(args.addrIncentive) != interop.Hash160Len ||
		len(args.addrClassifier) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, common.OwnerKey, args.owner)
	storage.Put(ctx, ledgerContractKey, args.addrLedger)
	storage.Put(ctx, incentiveContractKey, args.addrIncentive)
	storage.Put(ctx, classifierContractKey, args.addrClassifier)

	runtime.Log("trainer contract initialized")
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
	runtime.Log("trainer contract updated")
}

// SetClassifier changes the model contract consulted for predictions. Can
// be invoked only by the contract owner.
func SetClassifier(addr interop.Hash160) {
	ctx := storage.GetContext()
	if !common.HasUpdateAccess(ctx) {
		panic(common.ErrOwnerWitnessFailed)
	}
	if len(addr) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, classifierContractKey, addr)
}

// Submit records a labelled sample. The incentive contract quotes the
// deposit for the current block time, the quoted amount is pulled from the
// submitter account into the trainer account, an escrow record keyed by the
// commitment hash of the submission is stored in the ledger contract and
// the classifier is updated with the sample. An overpaid amount never
// leaves the submitter account. Returns the escrowed deposit.
//
// Can be invoked only by the submitter.
func Submit(submitter interop.Hash160, sample []byte, label int, paidAmount int) int {
	common.CheckWitness(submitter)
	if len(sample) == 0 {
		panic(ErrEmptySample)
	}

	ctx := storage.GetReadOnlyContext()
	now := runtime.GetTime()

	incentiveHash := storage.Get(ctx, incentiveContractKey).(interop.Hash160)
	cost := contract.Call(incentiveHash, "chargeForSubmission", contract.All,
		paidAmount, now).(int)

	if cost > 0 {
		to := runtime.GetExecutingScriptHash()
		if !gas.Transfer(submitter, to, cost, nil) {
			panic(ErrTransferFailed)
		}
	}

	key := commitmentKey(sample, label, now, submitter)

	ledgerHash := storage.Get(ctx, ledgerContractKey).(interop.Hash160)
	contract.Call(ledgerHash, "record", contract.All, key, label, now, submitter, cost)

	classifierHash := storage.Get(ctx, classifierContractKey).(interop.Hash160)
	contract.Call(classifierHash, "update", contract.All, sample, label)

	// the raw payload is only ever seen by this contract, other fields of
	// the record travel in the ledger's ContributionAdded notification
	runtime.Notify("SampleSubmitted", key, sample)

	return cost
}

// Refund pays the remaining claimable amount of a contribution back to its
// submitter. The contribution is identified by the original submission
// attributes, the ledger contract drains the escrow record and the
// incentive contract adjudicates the claim against the current classifier
// prediction; a rejected claim faults the transaction and undoes the drain.
// Returns the refunded amount.
//
// Can be invoked only by the submitter.
func Refund(submitter interop.Hash160, sample []byte, label int, submissionTime int) int {
	common.CheckWitness(submitter)

	ctx := storage.GetReadOnlyContext()
	key := commitmentKey(sample, label, submissionTime, submitter)

	ledgerHash := storage.Get(ctx, ledgerContractKey).(interop.Hash160)
	contract.Call(ledgerHash, "getClaimableAmount", contract.ReadOnly,
		key, label, submissionTime, submitter)

	prediction := predict(ctx, sample)

	claim := contract.Call(ledgerHash, "claimRefund", contract.All,
		key, submitter).(refundClaim)

	incentiveHash := storage.Get(ctx, incentiveContractKey).(interop.Hash160)
	amount := contract.Call(incentiveHash, "adjudicateRefund", contract.All,
		submitter, submissionTime, runtime.GetTime(),
		claim.claimable, claim.alreadyClaimed, prediction, label).(int)

	from := runtime.GetExecutingScriptHash()
	if !gas.Transfer(from, submitter, amount, nil) {
		panic(ErrTransferFailed)
	}

	return amount
}

// Report pays a reward to the reporter of a bad contribution. The
// contribution is identified by the original submission attributes, the
// ledger contract marks the claim, the incentive contract adjudicates it
// against the current classifier prediction and sizes the reward, and the
// reward is debited from the escrow record before leaving the trainer
// account; a rejected claim faults the transaction and undoes the mark.
// Returns the rewarded amount.
//
// Can be invoked only by the reporter.
func Report(reporter interop.Hash160, sample []byte, label int, submissionTime int,
	submitter interop.Hash160) int {
	common.CheckWitness(reporter)

	ctx := storage.GetReadOnlyContext()
	key := commitmentKey(sample, label, submissionTime, submitter)

	ledgerHash := storage.Get(ctx, ledgerContractKey).(interop.Hash160)
	contract.Call(ledgerHash, "getInitialDeposit", contract.ReadOnly,
		key, label, submissionTime, submitter)

	prediction := predict(ctx, sample)

	claim := contract.Call(ledgerHash, "claimReport", contract.All,
		key, reporter).(reportClaim)

	incentiveHash := storage.Get(ctx, incentiveContractKey).(interop.Hash160)
	reward := contract.Call(incentiveHash, "adjudicateReport", contract.All,
		reporter, submissionTime, runtime.GetTime(), submitter,
		claim.initialDeposit, claim.claimable, claim.alreadyClaimed,
		prediction, label).(int)

	contract.Call(ledgerHash, "debit", contract.All, key, reward)

	from := runtime.GetExecutingScriptHash()
	if !gas.Transfer(from, reporter, reward, nil) {
		panic(ErrTransferFailed)
	}

	runtime.Notify("ReportRewarded", key, reporter, reward)

	return reward
}

// QuoteCost returns the deposit a submission would require at the current
// block time.
func QuoteCost() int {
	ctx := storage.GetReadOnlyContext()
	incentiveHash := storage.Get(ctx, incentiveContractKey).(interop.Hash160)
	return contract.Call(incentiveHash, "quoteCost", contract.ReadOnly,
		runtime.GetTime()).(int)
}

// Predict returns the classifier prediction for the sample.
func Predict(sample []byte) int {
	ctx := storage.GetReadOnlyContext()
	return predict(ctx, sample)
}

// Ledger returns the script hash of the ledger contract.
func Ledger() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, ledgerContractKey).(interop.Hash160)
}

// Incentive returns the script hash of the incentive contract.
func Incentive() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, incentiveContractKey).(interop.Hash160)
}

// Classifier returns the script hash of the classifier contract.
func Classifier() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, classifierContractKey).(interop.Hash160)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// commitmentKey binds a contribution to the exact submission attributes:
// any later claim presenting different attributes resolves to a key with
// no record behind it.
func commitmentKey(sample []byte, label int, time int, submitter interop.Hash160) []byte {
	return crypto.Sha256(std.Serialize([]interface{}{sample, label, time, submitter}))
}

func predict(ctx storage.Context, sample []byte) int {
	classifierHash := storage.Get(ctx, classifierContractKey).(interop.Hash160)
	return contract.Call(classifierHash, "predict", contract.ReadOnly, sample).(int)
}
