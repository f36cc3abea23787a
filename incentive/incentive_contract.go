package incentive

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/cotrain-labs/cotrain-contract/common"
)

const (
	// ErrClockRegression is thrown when a supplied time reading is
	// earlier than one already recorded.
	ErrClockRegression = "time reading earlier than the recorded one"
	// ErrInsufficientPayment is thrown when the paid amount does not
	// cover the submission cost.
	ErrInsufficientPayment = "payment does not cover submission cost"
	// ErrAlreadyClaimed is thrown when the claimant has already had a
	// claim accepted against the contribution.
	ErrAlreadyClaimed = "already claimed"
	// ErrNothingToClaim is thrown when the contribution has no claimable
	// amount left.
	ErrNothingToClaim = "nothing to claim"
	// ErrTooEarly is thrown when the claim wait time has not passed yet.
	ErrTooEarly = "claim wait time has not passed"
	// ErrModelDisagrees is thrown on refund when the model prediction
	// differs from the submitted label.
	ErrModelDisagrees = "model disagrees with the label"
	// ErrModelAgrees is thrown on report when the model prediction
	// matches the submitted label.
	ErrModelAgrees = "model agrees with the label"
	// ErrSelfReport is thrown when an author reports their own
	// contribution.
	ErrSelfReport = "cannot report own contribution"
	// ErrNoStanding is thrown when the reporter has no validated
	// contributions to weight the reward with.
	ErrNoStanding = "reporter has no validated contributions"
	// ErrNegativeAmount is thrown on negative amount or time arguments.
	ErrNegativeAmount = "negative amount"
	// ErrWaitTimeOrder is thrown at deploy when the wait times are not
	// ordered as refund <= owner claim <= any address claim.
	ErrWaitTimeOrder = "wait times must be ordered refund <= owner <= any"
)

const (
	// Base cost multiplier of the fee curve: an idle-for-one-unit system
	// quotes costWeight*costNumerator.
	costNumerator = 3600

	costWeightKey         = "costWeight"
	lastUpdateTimeKey     = "lastUpdateTime"
	refundWaitTimeKey     = "refundWaitTime"
	ownerClaimWaitTimeKey = "ownerClaimWaitTime"
	anyClaimWaitTimeKey   = "anyAddressClaimWaitTime"
	totalSubmittedKey     = "totalSubmitted"
	totalGoodKey          = "totalGoodDataCount"

	trainerContractKey = "trainerScriptHash"

	numValidPrefix = 'v'
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
		owner                   interop.Hash160
		trainer                 interop.Hash160
		costWeight              int
		lastUpdateTime          int
		refundWaitTime          int
		ownerClaimWaitTime      int
		anyAddressClaimWaitTime int
	})

	if len(args.owner) != interop.Hash160Len || len(args.trainer) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if args.costWeight < 0 || args.lastUpdateTime < 0 || args.refundWaitTime < 0 {
		panic(ErrNegativeAmount)
	}
	if args.refundWaitTime > args.ownerClaimWaitTime ||
		args.ownerClaimWaitTime > args.anyAddressClaimWaitTime {
		panic(ErrWaitTimeOrder)
	}

	storage.Put(ctx, common.OwnerKey, args.owner)
	storage.Put(ctx, trainerContractKey, args.trainer)
	storage.Put(ctx, costWeightKey, args.costWeight)
	storage.Put(ctx, lastUpdateTimeKey, args.lastUpdateTime)
	storage.Put(ctx, refundWaitTimeKey, args.refundWaitTime)
	storage.Put(ctx, ownerClaimWaitTimeKey, args.ownerClaimWaitTime)
	storage.Put(ctx, anyClaimWaitTimeKey, args.anyAddressClaimWaitTime)

	runtime.Log("incentive contract initialized")
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
	runtime.Log("incentive contract updated")
}

// SetTrainer changes the trainer contract allowed to mutate pricing and
// adjudication state. Can be invoked only by the contract owner.
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

// SetCostWeight changes the multiplier of the submission fee curve. The
// curve is deliberately independent of sample content; adjusting the weight
// is the policy knob left for a content-aware replacement. Can be invoked
// only by the contract owner.
func SetCostWeight(weight int) {
	ctx := storage.GetContext()
	if !common.HasUpdateAccess(ctx) {
		panic(common.ErrOwnerWitnessFailed)
	}
	if weight < 0 {
		panic(ErrNegativeAmount)
	}

	storage.Put(ctx, costWeightKey, weight)
}

// QuoteCost returns the deposit required for a submission at the given
// time. The cost decays with idle time as costWeight*3600/sqrt(elapsed),
// which discourages rapid low-value spam while staying responsive; at zero
// elapsed time the divisor is forced to one and the quote is the full
// costWeight*3600.
func QuoteCost(currentTime int) int {
	ctx := storage.GetReadOnlyContext()
	return quoteCost(ctx, currentTime)
}

// ChargeForSubmission quotes the submission cost at the given time, checks
// it against the paid amount and commits the time of this pricing update.
// It returns the actual cost; any excess of the paid amount stays with the
// submitter. Can be invoked only by the trainer contract.
func ChargeForSubmission(paidAmount int, currentTime int) int {
	ctx := storage.GetContext()
	checkTrainer(ctx)

	cost := quoteCost(ctx, currentTime)
	if paidAmount < cost {
		panic(ErrInsufficientPayment)
	}

	storage.Put(ctx, lastUpdateTimeKey, currentTime)
	storage.Put(ctx, totalSubmittedKey, common.GetInt(ctx, totalSubmittedKey)+1)

	return cost
}

// AdjudicateRefund decides a refund claim for a contribution submitted at
// submissionTime, given the remaining claimable amount, the mark of an
// earlier accepted claim by the same claimant, and the model prediction for
// the sample. A successful refund always pays the full remaining claimable
// amount and counts the contribution as validated for the claimant. Any
// failed check panics, faulting the transaction. Can be invoked only by the
// trainer contract.
func AdjudicateRefund(claimant interop.Hash160, submissionTime int, currentTime int,
	claimableAmount int, alreadyClaimed bool, prediction int, label int) int {
	ctx := storage.GetContext()
	checkTrainer(ctx)

	if alreadyClaimed {
		panic(ErrAlreadyClaimed)
	}
	if claimableAmount == 0 {
		panic(ErrNothingToClaim)
	}
	if currentTime < submissionTime {
		panic(ErrClockRegression)
	}
	if currentTime-submissionTime < common.GetInt(ctx, refundWaitTimeKey) {
		panic(ErrTooEarly)
	}
	if prediction != label {
		panic(ErrModelDisagrees)
	}

	stKey := numValidKey(claimant)
	storage.Put(ctx, stKey, common.GetInt(ctx, stKey)+1)
	storage.Put(ctx, totalGoodKey, common.GetInt(ctx, totalGoodKey)+1)

	return claimableAmount
}

// AdjudicateReport decides a report claim and returns the reward to debit
// from the contribution. Three tiers apply, checked in order:
//
//   - owner sweep: past the owner claim wait time the contract owner takes
//     the full remaining claimable amount;
//   - open sweep: past the any-address claim wait time the first reporter
//     to commit takes the full remaining claimable amount;
//   - merit report: otherwise the reporter must not be the original author,
//     must not have claimed before, must wait out the refund wait time,
//     must present a prediction differing from the label and must have
//     validated contributions of their own. The reward is the initial
//     deposit weighted by the reporter's share of all validated
//     contributions, clamped to the claimable amount when zero or in
//     excess of it.
//
// Can be invoked only by the trainer contract.
func AdjudicateReport(reporter interop.Hash160, submissionTime int, currentTime int,
	originalAuthor interop.Hash160, initialDeposit int, claimableAmount int,
	alreadyClaimed bool, prediction int, label int) int {
	ctx := storage.GetContext()
	checkTrainer(ctx)

	if claimableAmount == 0 {
		panic(ErrNothingToClaim)
	}
	if currentTime < submissionTime {
		panic(ErrClockRegression)
	}

	elapsed := currentTime - submissionTime

	if elapsed >= common.GetInt(ctx, ownerClaimWaitTimeKey) &&
		common.BytesEqual(reporter, common.Owner(ctx)) {
		return claimableAmount
	}
	if elapsed >= common.GetInt(ctx, anyClaimWaitTimeKey) {
		return claimableAmount
	}

	if common.BytesEqual(reporter, originalAuthor) {
		panic(ErrSelfReport)
	}
	if alreadyClaimed {
		panic(ErrAlreadyClaimed)
	}
	if elapsed < common.GetInt(ctx, refundWaitTimeKey) {
		panic(ErrTooEarly)
	}
	if prediction == label {
		panic(ErrModelAgrees)
	}

	numValid := common.GetInt(ctx, numValidKey(reporter))
	if numValid == 0 {
		panic(ErrNoStanding)
	}

	reward := initialDeposit * numValid / common.GetInt(ctx, totalGoodKey)
	if reward == 0 || reward > claimableAmount {
		reward = claimableAmount
	}

	return reward
}

// NumValid returns the count of validated contributions of the address.
func NumValid(addr interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, numValidKey(addr))
}

// TotalSubmitted returns the count of charged submissions.
func TotalSubmitted() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, totalSubmittedKey)
}

// TotalGoodDataCount returns the count of validated contributions across
// all addresses. It is the denominator of the merit-weighted reward split.
func TotalGoodDataCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, totalGoodKey)
}

// CostWeight returns the multiplier of the submission fee curve.
func CostWeight() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, costWeightKey)
}

// LastUpdateTime returns the time of the last committed pricing update.
func LastUpdateTime() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, lastUpdateTimeKey)
}

// RefundWaitTime returns the wait time before a refund can be claimed.
func RefundWaitTime() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, refundWaitTimeKey)
}

// OwnerClaimWaitTime returns the wait time before the contract owner can
// sweep an unclaimed deposit.
func OwnerClaimWaitTime() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, ownerClaimWaitTimeKey)
}

// AnyAddressClaimWaitTime returns the wait time before any address can
// sweep an unclaimed deposit.
func AnyAddressClaimWaitTime() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, anyClaimWaitTimeKey)
}

// Trainer returns the script hash of the trainer contract.
func Trainer() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, trainerContractKey).(interop.Hash160)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func quoteCost(ctx storage.Context, currentTime int) int {
	costWeight := common.GetInt(ctx, costWeightKey)
	if costWeight == 0 {
		return 0
	}

	lastUpdateTime := common.GetInt(ctx, lastUpdateTimeKey)
	if currentTime < lastUpdateTime {
		panic(ErrClockRegression)
	}

	divisor := 1
	elapsed := currentTime - lastUpdateTime
	if elapsed > 0 {
		divisor = common.Sqrt(elapsed)
	}

	return costWeight * costNumerator / divisor
}

func checkTrainer(ctx storage.Context) {
	trainer := storage.Get(ctx, trainerContractKey).(interop.Hash160)
	common.CheckTrainerWitness(trainer)
}

func numValidKey(addr interop.Hash160) []byte {
	return append([]byte{numValidPrefix}, addr...)
}
