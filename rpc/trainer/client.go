// Package trainer contains RPC wrappers for CoTrain Trainer contract.
package trainer

import (
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
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

// QuoteCost invokes `quoteCost` method of contract.
func (c *ContractReader) QuoteCost() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "quoteCost"))
}

// Predict invokes `predict` method of contract.
func (c *ContractReader) Predict(sample []byte) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "predict", sample))
}

// Ledger invokes `ledger` method of contract.
func (c *ContractReader) Ledger() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "ledger"))
}

// Incentive invokes `incentive` method of contract.
func (c *ContractReader) Incentive() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "incentive"))
}

// Classifier invokes `classifier` method of contract.
func (c *ContractReader) Classifier() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "classifier"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Submit creates a transaction invoking `submit` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Submit(submitter util.Uint160, sample []byte, label *big.Int, paidAmount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "submit", submitter, sample, label, paidAmount)
}

// SubmitTransaction creates a transaction invoking `submit` method of the
// contract. This transaction is signed, but not sent to the network,
// instead it's returned to the caller.
func (c *Contract) SubmitTransaction(submitter util.Uint160, sample []byte, label *big.Int, paidAmount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "submit", submitter, sample, label, paidAmount)
}

// Refund creates a transaction invoking `refund` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Refund(submitter util.Uint160, sample []byte, label *big.Int, submissionTime *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "refund", submitter, sample, label, submissionTime)
}

// RefundTransaction creates a transaction invoking `refund` method of the
// contract. This transaction is signed, but not sent to the network,
// instead it's returned to the caller.
func (c *Contract) RefundTransaction(submitter util.Uint160, sample []byte, label *big.Int, submissionTime *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "refund", submitter, sample, label, submissionTime)
}

// Report creates a transaction invoking `report` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Report(reporter util.Uint160, sample []byte, label *big.Int, submissionTime *big.Int, submitter util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "report", reporter, sample, label, submissionTime, submitter)
}

// ReportTransaction creates a transaction invoking `report` method of the
// contract. This transaction is signed, but not sent to the network,
// instead it's returned to the caller.
func (c *Contract) ReportTransaction(reporter util.Uint160, sample []byte, label *big.Int, submissionTime *big.Int, submitter util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "report", reporter, sample, label, submissionTime, submitter)
}

// SetClassifier creates a transaction invoking `setClassifier` method of
// the contract. This transaction is signed and immediately sent to the
// network. The values returned are its hash, ValidUntilBlock value and
// error if any.
func (c *Contract) SetClassifier(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setClassifier", addr)
}

// SetClassifierTransaction creates a transaction invoking `setClassifier`
// method of the contract. This transaction is signed, but not sent to the
// network, instead it's returned to the caller.
func (c *Contract) SetClassifierTransaction(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setClassifier", addr)
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
