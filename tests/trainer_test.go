package tests

import (
	"crypto/sha256"
	"math/big"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/cotrain-labs/cotrain-contract/common"
	"github.com/cotrain-labs/cotrain-contract/incentive"
	"github.com/cotrain-labs/cotrain-contract/ledger"
	"github.com/cotrain-labs/cotrain-contract/trainer"
	"github.com/stretchr/testify/require"
)

const (
	trainerPath    = "../trainer"
	classifierPath = "../internal/testcontracts/classifier"
)

const (
	trainerCostWeight = 100
	farFuture         = 1_000_000_000_000
)

type trainerDeployment struct {
	e           *neotest.Executor
	trainer     util.Uint160
	ledgerH     util.Uint160
	incentiveH  util.Uint160
	classifierH util.Uint160
}

// deployTrainerEnvironment deploys the full trio plus the memorizing
// classifier. The trainer hash is known before deployment, so the ledger
// and the incentive engine can be bound to it up front. Wait times keep
// refunds immediate and sweeps out of reach.
func deployTrainerEnvironment(t *testing.T) trainerDeployment {
	e := newExecutor(t)

	ctrTrainer := neotest.CompileFile(t, e.CommitteeHash, trainerPath, path.Join(trainerPath, "config.yml"))
	ctrLedger := neotest.CompileFile(t, e.CommitteeHash, ledgerPath, path.Join(ledgerPath, "config.yml"))
	ctrIncentive := neotest.CompileFile(t, e.CommitteeHash, incentivePath, path.Join(incentivePath, "config.yml"))
	ctrClassifier := neotest.CompileFile(t, e.CommitteeHash, classifierPath, path.Join(classifierPath, "config.yml"))

	e.DeployContract(t, ctrClassifier, nil)
	e.DeployContract(t, ctrLedger, []interface{}{e.CommitteeHash, ctrTrainer.Hash})
	e.DeployContract(t, ctrIncentive, []interface{}{
		e.CommitteeHash, ctrTrainer.Hash,
		int64(trainerCostWeight), int64(e.TopBlock(t).Timestamp),
		int64(0), int64(farFuture), int64(farFuture),
	})
	e.DeployContract(t, ctrTrainer, []interface{}{
		e.CommitteeHash, ctrLedger.Hash, ctrIncentive.Hash, ctrClassifier.Hash,
	})

	return trainerDeployment{
		e:           e,
		trainer:     ctrTrainer.Hash,
		ledgerH:     ctrLedger.Hash,
		incentiveH:  ctrIncentive.Hash,
		classifierH: ctrClassifier.Hash,
	}
}

// submit sends a sample on behalf of the signer and returns the escrowed
// deposit together with the submission time.
func (d trainerDeployment) submit(t *testing.T, signer neotest.Signer, sample []byte, label int64) (int64, int64) {
	c := d.e.NewInvoker(d.trainer, signer)
	tx := c.PrepareInvoke(t, "submit", signer.ScriptHash(), sample, label, int64(farFuture))
	d.e.AddNewBlock(t, tx)
	aer := d.e.CheckHalt(t, tx.Hash())

	cost := aer.Stack[0].Value().(*big.Int).Int64()
	return cost, int64(d.e.TopBlock(t).Timestamp)
}

func (d trainerDeployment) trainerBalance(t *testing.T) int64 {
	return d.e.Chain.GetUtilityTokenBalance(d.trainer).Int64()
}

// commitment recomputes the contribution key the trainer derives on chain.
func commitment(t *testing.T, sample []byte, label int64, time int64, submitter util.Uint160) []byte {
	data, err := stackitem.Serialize(stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(sample),
		stackitem.NewBigInteger(big.NewInt(label)),
		stackitem.NewBigInteger(big.NewInt(time)),
		stackitem.NewByteArray(submitter.BytesBE()),
	}))
	require.NoError(t, err)
	h := sha256.Sum256(data)
	return h[:]
}

func TestTrainerVersion(t *testing.T) {
	d := deployTrainerEnvironment(t)
	c := d.e.CommitteeInvoker(d.trainer)
	c.Invoke(t, common.Version, "version")
}

func TestTrainerSubmit(t *testing.T) {
	d := deployTrainerEnvironment(t)

	acc := d.e.NewAccount(t)
	sample := randomBytes(64)

	cost, when := d.submit(t, acc, sample, 1)
	require.Positive(t, cost)
	require.Equal(t, cost, d.trainerBalance(t))

	// the escrow record is bound to the exact submission attributes
	key := commitment(t, sample, 1, when, acc.ScriptHash())
	cLedger := d.e.CommitteeInvoker(d.ledgerH)
	cLedger.Invoke(t, cost, "getInitialDeposit", key, int64(1), when, acc.ScriptHash())
	cLedger.Invoke(t, cost, "getClaimableAmount", key, int64(1), when, acc.ScriptHash())

	// the classifier memorized the sample
	cTrainer := d.e.CommitteeInvoker(d.trainer)
	cTrainer.Invoke(t, 1, "predict", sample)

	cIncentive := d.e.CommitteeInvoker(d.incentiveH)
	cIncentive.Invoke(t, 1, "totalSubmitted")

	// submissions are witnessed by the submitter
	cOther := d.e.NewInvoker(d.trainer, d.e.NewAccount(t))
	cOther.InvokeFail(t, common.ErrWitnessFailed, "submit",
		acc.ScriptHash(), randomBytes(64), int64(1), int64(farFuture))
	cSelf := d.e.NewInvoker(d.trainer, acc)
	cSelf.InvokeFail(t, trainer.ErrEmptySample, "submit",
		acc.ScriptHash(), []byte{}, int64(1), int64(farFuture))
}

func TestTrainerRefund(t *testing.T) {
	d := deployTrainerEnvironment(t)

	acc := d.e.NewAccount(t)
	sample := randomBytes(64)
	cost, when := d.submit(t, acc, sample, 1)

	c := d.e.NewInvoker(d.trainer, acc)
	c.Invoke(t, cost, "refund", acc.ScriptHash(), sample, int64(1), when)

	// the escrow is drained and the deposit is back with the submitter
	require.Zero(t, d.trainerBalance(t))
	key := commitment(t, sample, 1, when, acc.ScriptHash())
	cLedger := d.e.CommitteeInvoker(d.ledgerH)
	cLedger.Invoke(t, 0, "getClaimableAmount", key, int64(1), when, acc.ScriptHash())

	// a validated contribution builds standing
	cIncentive := d.e.CommitteeInvoker(d.incentiveH)
	cIncentive.Invoke(t, 1, "numValid", acc.ScriptHash())

	// the earlier claim mark blocks a second claim, the fault keeps every
	// balance as is
	c.InvokeFail(t, incentive.ErrAlreadyClaimed, "refund",
		acc.ScriptHash(), sample, int64(1), when)

	// unknown attributes resolve to a key without a record
	c.InvokeFail(t, ledger.ErrNotFound, "refund",
		acc.ScriptHash(), sample, int64(2), when)
}

func TestTrainerRefundModelDisagrees(t *testing.T) {
	d := deployTrainerEnvironment(t)

	first := d.e.NewAccount(t)
	second := d.e.NewAccount(t)
	sample := randomBytes(64)

	d.submit(t, first, sample, 2)
	cost, when := d.submit(t, second, sample, 1)

	// the classifier memorized the first label, the second submitter
	// cannot take their deposit back
	c := d.e.NewInvoker(d.trainer, second)
	c.InvokeFail(t, incentive.ErrModelDisagrees, "refund",
		second.ScriptHash(), sample, int64(1), when)

	// the failed claim left the escrow record untouched
	key := commitment(t, sample, 1, when, second.ScriptHash())
	cLedger := d.e.CommitteeInvoker(d.ledgerH)
	cLedger.Invoke(t, cost, "getClaimableAmount", key, int64(1), when, second.ScriptHash())
	cLedger.Invoke(t, 0, "getNumClaims", key, int64(1), when, second.ScriptHash())
	cLedger.Invoke(t, false, "hasClaimed", key, int64(1), when, second.ScriptHash(), second.ScriptHash())
}

func TestTrainerReport(t *testing.T) {
	d := deployTrainerEnvironment(t)

	reporter := d.e.NewAccount(t)
	author := d.e.NewAccount(t)
	sample := randomBytes(64)

	// the reporter earns standing with a validated contribution of
	// their own
	goodCost, goodTime := d.submit(t, reporter, sample, 2)
	cRep := d.e.NewInvoker(d.trainer, reporter)
	cRep.Invoke(t, goodCost, "refund", reporter.ScriptHash(), sample, int64(2), goodTime)

	// the author mislabels the same sample
	badCost, badTime := d.submit(t, author, sample, 1)

	// reporting your own contribution is rejected
	cAuthor := d.e.NewInvoker(d.trainer, author)
	cAuthor.InvokeFail(t, incentive.ErrSelfReport, "report",
		author.ScriptHash(), sample, int64(1), badTime, author.ScriptHash())

	// sole standing takes the whole deposit
	tx := cRep.PrepareInvoke(t, "report",
		reporter.ScriptHash(), sample, int64(1), badTime, author.ScriptHash())
	d.e.AddNewBlock(t, tx)
	d.e.CheckHalt(t, tx.Hash(), stackitem.NewBigInteger(big.NewInt(badCost)))

	require.Zero(t, d.trainerBalance(t))
	key := commitment(t, sample, 1, badTime, author.ScriptHash())
	cLedger := d.e.CommitteeInvoker(d.ledgerH)
	cLedger.Invoke(t, 0, "getClaimableAmount", key, int64(1), badTime, author.ScriptHash())
	cLedger.Invoke(t, true, "hasClaimed", key, int64(1), badTime, author.ScriptHash(), reporter.ScriptHash())

	// drained, a second report has nothing to take
	cRep.InvokeFail(t, incentive.ErrNothingToClaim, "report",
		reporter.ScriptHash(), sample, int64(1), badTime, author.ScriptHash())
}

func TestTrainerSetClassifier(t *testing.T) {
	d := deployTrainerEnvironment(t)
	c := d.e.CommitteeInvoker(d.trainer)

	acc := d.e.NewAccount(t)
	cAcc := d.e.NewInvoker(d.trainer, acc)
	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "setClassifier", d.classifierH)

	c.Invoke(t, stackitem.Null{}, "setClassifier", d.classifierH)
	c.Invoke(t, stackitem.NewByteArray(d.classifierH.BytesBE()), "classifier")
	c.Invoke(t, stackitem.NewByteArray(d.ledgerH.BytesBE()), "ledger")
	c.Invoke(t, stackitem.NewByteArray(d.incentiveH.BytesBE()), "incentive")
}

func TestTrainerQuoteCost(t *testing.T) {
	d := deployTrainerEnvironment(t)
	c := d.e.CommitteeInvoker(d.trainer)

	s, err := c.TestInvoke(t, "quoteCost")
	require.NoError(t, err)
	require.Positive(t, s.Pop().BigInt().Int64())
}
