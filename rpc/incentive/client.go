// Package incentive contains RPC wrappers for CoTrain Incentive contract.
package incentive

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
func (c *ContractReader) QuoteCost(currentTime *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "quoteCost", currentTime))
}

// NumValid invokes `numValid` method of contract.
func (c *ContractReader) NumValid(addr util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "numValid", addr))
}

// TotalSubmitted invokes `totalSubmitted` method of contract.
func (c *ContractReader) TotalSubmitted() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalSubmitted"))
}

// TotalGoodDataCount invokes `totalGoodDataCount` method of contract.
func (c *ContractReader) TotalGoodDataCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalGoodDataCount"))
}

// CostWeight invokes `costWeight` method of contract.
func (c *ContractReader) CostWeight() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "costWeight"))
}

// LastUpdateTime invokes `lastUpdateTime` method of contract.
func (c *ContractReader) LastUpdateTime() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "lastUpdateTime"))
}

// RefundWaitTime invokes `refundWaitTime` method of contract.
func (c *ContractReader) RefundWaitTime() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "refundWaitTime"))
}

// OwnerClaimWaitTime invokes `ownerClaimWaitTime` method of contract.
func (c *ContractReader) OwnerClaimWaitTime() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "ownerClaimWaitTime"))
}

// AnyAddressClaimWaitTime invokes `anyAddressClaimWaitTime` method of
// contract.
func (c *ContractReader) AnyAddressClaimWaitTime() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "anyAddressClaimWaitTime"))
}

// Trainer invokes `trainer` method of contract.
func (c *ContractReader) Trainer() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "trainer"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// SetCostWeight creates a transaction invoking `setCostWeight` method of
// the contract. This transaction is signed and immediately sent to the
// network. The values returned are its hash, ValidUntilBlock value and
// error if any.
func (c *Contract) SetCostWeight(weight *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setCostWeight", weight)
}

// SetCostWeightTransaction creates a transaction invoking `setCostWeight`
// method of the contract. This transaction is signed, but not sent to the
// network, instead it's returned to the caller.
func (c *Contract) SetCostWeightTransaction(weight *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setCostWeight", weight)
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
