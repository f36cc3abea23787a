package ledger

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}

func (t *testInv) CallAndExpandIterator(contract util.Uint160, operation string, i int, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}
func (t *testInv) TraverseIterator(uuid.UUID, *result.Iterator, int) ([]stackitem.Item, error) {
	return nil, nil
}
func (t *testInv) TerminateSession(uuid.UUID) error {
	return nil
}

func TestContributionID(t *testing.T) {
	var id ContributionID
	for i := range id {
		id[i] = byte(i)
	}

	decoded, err := DecodeContributionID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, decoded)

	_, err = DecodeContributionID("not-a-base58-string!")
	require.Error(t, err)

	// valid base58, wrong length
	_, err = DecodeContributionID("3mJr7AoUXx2Wqd")
	require.Error(t, err)
}

func TestReaderErrors(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	var id ContributionID
	sub := util.Uint160{4, 5, 6}

	ti.err = errors.New("bad")
	_, err := r.GetClaimableAmount(id, big.NewInt(1), big.NewInt(2), sub)
	require.Error(t, err)
	_, err = r.HasClaimed(id, big.NewInt(1), big.NewInt(2), sub, sub)
	require.Error(t, err)
	_, err = r.Get(id)
	require.Error(t, err)

	ti.err = nil
	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{
			stackitem.Make([]stackitem.Item{}),
		},
	}
	_, err = r.Get(id)
	require.Error(t, err)
}

func TestReaderGet(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	sub := util.Uint160{4, 5, 6}
	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{
			stackitem.Make([]stackitem.Item{
				stackitem.Make(sub.BytesBE()),
				stackitem.Make(1),
				stackitem.Make(100500),
				stackitem.Make(42),
				stackitem.Make(40),
				stackitem.Make(2),
			}),
		},
	}

	var id ContributionID
	c, err := r.Get(id)
	require.NoError(t, err)
	require.Equal(t, sub, c.Submitter)
	require.Equal(t, int64(1), c.Label.Int64())
	require.Equal(t, int64(100500), c.Time.Int64())
	require.Equal(t, int64(42), c.InitialDeposit.Int64())
	require.Equal(t, int64(40), c.Claimable.Int64())
	require.Equal(t, int64(2), c.NumClaims.Int64())
}
