package ledger

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// ContributionID is a commitment hash identifying a single contribution in
// the ledger contract.
type ContributionID [32]byte

// String returns the base58 rendering of the contribution ID, the form
// used in logs and tooling.
func (id ContributionID) String() string {
	return base58.Encode(id[:])
}

// DecodeContributionID parses a base58-encoded contribution ID.
func DecodeContributionID(s string) (ContributionID, error) {
	var id ContributionID

	data, err := base58.Decode(s)
	if err != nil {
		return id, fmt.Errorf("invalid base58 string: %w", err)
	}
	if len(data) != len(id) {
		return id, errors.New("wrong contribution ID length")
	}

	copy(id[:], data)
	return id, nil
}

// Contribution is a client-side view of a single escrow record.
type Contribution struct {
	Submitter      util.Uint160
	Label          *big.Int
	Time           *big.Int
	InitialDeposit *big.Int
	Claimable      *big.Int
	NumClaims      *big.Int
}

// FromStackItem retrieves fields of Contribution from the given
// [stackitem.Item] or returns an error if it's not possible to do so.
func (res *Contribution) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 6 {
		return errors.New("wrong number of structure elements")
	}

	b, err := arr[0].TryBytes()
	if err != nil {
		return fmt.Errorf("field Submitter: %w", err)
	}
	res.Submitter, err = util.Uint160DecodeBytesBE(b)
	if err != nil {
		return fmt.Errorf("field Submitter: %w", err)
	}

	res.Label, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Label: %w", err)
	}

	res.Time, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Time: %w", err)
	}

	res.InitialDeposit, err = arr[3].TryInteger()
	if err != nil {
		return fmt.Errorf("field InitialDeposit: %w", err)
	}

	res.Claimable, err = arr[4].TryInteger()
	if err != nil {
		return fmt.Errorf("field Claimable: %w", err)
	}

	res.NumClaims, err = arr[5].TryInteger()
	if err != nil {
		return fmt.Errorf("field NumClaims: %w", err)
	}

	return nil
}
