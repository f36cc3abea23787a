package classifier

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Classifier is a trivial stand-in for a model contract used in tests: it
// memorizes the first label seen for a sample and predicts it afterwards.
// Unknown samples predict 0.

func Update(sample []byte, label int) {
	ctx := storage.GetContext()
	key := crypto.Sha256(sample)
	if storage.Get(ctx, key) == nil {
		storage.Put(ctx, key, label)
	}
}

func Predict(sample []byte) int {
	ctx := storage.GetReadOnlyContext()
	val := storage.Get(ctx, crypto.Sha256(sample))
	if val == nil {
		return 0
	}
	return val.(int)
}

func Verify() bool {
	return true
}
