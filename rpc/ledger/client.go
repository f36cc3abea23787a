// Package ledger contains RPC wrappers for CoTrain Ledger contract.
package ledger

import (
	"math/big"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract
// hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the
// given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// GetClaimableAmount invokes `getClaimableAmount` method of contract.
func (c *ContractReader) GetClaimableAmount(id ContributionID, label *big.Int, time *big.Int, submitter util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getClaimableAmount", id[:], label, time, submitter))
}

// GetInitialDeposit invokes `getInitialDeposit` method of contract.
func (c *ContractReader) GetInitialDeposit(id ContributionID, label *big.Int, time *big.Int, submitter util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getInitialDeposit", id[:], label, time, submitter))
}

// GetNumClaims invokes `getNumClaims` method of contract.
func (c *ContractReader) GetNumClaims(id ContributionID, label *big.Int, time *big.Int, submitter util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getNumClaims", id[:], label, time, submitter))
}

// HasClaimed invokes `hasClaimed` method of contract.
func (c *ContractReader) HasClaimed(id ContributionID, label *big.Int, time *big.Int, submitter util.Uint160, claimant util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "hasClaimed", id[:], label, time, submitter, claimant))
}

// Get invokes `get` method of contract.
func (c *ContractReader) Get(id ContributionID) (*Contribution, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "get", id[:]))
	if err != nil {
		return nil, err
	}

	var res = new(Contribution)
	err = res.FromStackItem(item)
	return res, err
}

// Contributions invokes `contributions` method of contract, returning an
// iterator session over the stored contribution keys.
func (c *ContractReader) Contributions() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "contributions"))
}

// ContributionsExpanded is similar to Contributions (uses the same
// contract method), but can be useful if the server used doesn't support
// sessions and doesn't expand iterators. It creates a script that will get
// the specified number of result items from the iterator right in the
// script and return them to you. It's only limited by VM stack and GAS
// available for RPC invocations.
func (c *ContractReader) ContributionsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "contributions", _numOfIteratorItems))
}

// Trainer invokes `trainer` method of contract.
func (c *ContractReader) Trainer() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "trainer"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Record creates a transaction invoking `record` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Record(id ContributionID, label *big.Int, time *big.Int, submitter util.Uint160, deposit *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "record", id[:], label, time, submitter, deposit)
}

// RecordTransaction creates a transaction invoking `record` method of the
// contract. This transaction is signed, but not sent to the network,
// instead it's returned to the caller.
func (c *Contract) RecordTransaction(id ContributionID, label *big.Int, time *big.Int, submitter util.Uint160, deposit *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "record", id[:], label, time, submitter, deposit)
}

// ClaimRefund creates a transaction invoking `claimRefund` method of the
// contract. This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ClaimRefund(id ContributionID, claimant util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "claimRefund", id[:], claimant)
}

// ClaimRefundTransaction creates a transaction invoking `claimRefund`
// method of the contract. This transaction is signed, but not sent to the
// network, instead it's returned to the caller.
func (c *Contract) ClaimRefundTransaction(id ContributionID, claimant util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "claimRefund", id[:], claimant)
}

// ClaimReport creates a transaction invoking `claimReport` method of the
// contract. This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ClaimReport(id ContributionID, claimant util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "claimReport", id[:], claimant)
}

// ClaimReportTransaction creates a transaction invoking `claimReport`
// method of the contract. This transaction is signed, but not sent to the
// network, instead it's returned to the caller.
func (c *Contract) ClaimReportTransaction(id ContributionID, claimant util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "claimReport", id[:], claimant)
}

// Debit creates a transaction invoking `debit` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Debit(id ContributionID, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "debit", id[:], amount)
}

// DebitTransaction creates a transaction invoking `debit` method of the
// contract. This transaction is signed, but not sent to the network,
// instead it's returned to the caller.
func (c *Contract) DebitTransaction(id ContributionID, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "debit", id[:], amount)
}

// SetTrainer creates a transaction invoking `setTrainer` method of the
// contract. This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetTrainer(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setTrainer", addr)
}

// SetTrainerTransaction creates a transaction invoking `setTrainer` method
// of the contract. This transaction is signed, but not sent to the network,
// instead it's returned to the caller.
func (c *Contract) SetTrainerTransaction(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setTrainer", addr)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the
// contract. This transaction is signed, but not sent to the network,
// instead it's returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}
