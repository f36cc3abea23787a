package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// OwnerKey is a storage key of the contract owner script hash. Every
// contract of the suite stores its owner under this key at deploy time.
const OwnerKey = "contractOwner"

// Owner returns the script hash of the contract owner.
func Owner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, OwnerKey).(interop.Hash160)
}

// HasUpdateAccess returns true if the invocation is witnessed by the
// stored contract owner, so the contract can be updated or reconfigured.
func HasUpdateAccess(ctx storage.Context) bool {
	return runtime.CheckWitness(Owner(ctx))
}
