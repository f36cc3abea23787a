// Deploy command bootstraps the CoTrain contract trio on a Neo chain. The
// trainer contract hash is computed before anything is sent, so the ledger
// and the incentive engine can be bound to the trainer in their deployment
// arguments, and the trainer is deployed last pointing at the other two.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/nspcc-dev/neo-go/cli/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/compiler"
	"github.com/nspcc-dev/neo-go/pkg/config"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

type contractSource struct {
	NEF      nef.File
	Manifest manifest.Manifest
	Hash     util.Uint160
}

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the deployer wallet")
	walletPassword := flag.String("password", "", "Password of the deployer wallet account")
	contractsDir := flag.String("contracts", ".", "Path to the contract sources")
	classifierArg := flag.String("classifier", "", "Script hash (LE) of the deployed classifier contract")
	costWeight := flag.Int64("cost-weight", 1, "Multiplier of the submission fee curve")
	refundWait := flag.Int64("refund-wait", int64(24*time.Hour/time.Millisecond), "Refund wait time, ms")
	ownerClaimWait := flag.Int64("owner-claim-wait", int64(7*24*time.Hour/time.Millisecond), "Owner sweep wait time, ms")
	anyClaimWait := flag.Int64("any-claim-wait", int64(14*24*time.Hour/time.Millisecond), "Open sweep wait time, ms")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing deployer wallet")
	case *classifierArg == "":
		log.Fatal("missing classifier contract hash")
	}

	classifierHash, err := util.Uint160DecodeStringLE(*classifierArg)
	if err != nil {
		log.Fatal(fmt.Errorf("decode classifier contract hash: %w", err))
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(fmt.Errorf("init logger: %w", err))
	}
	defer logger.Sync()

	if err := deploy(logger, deployPrm{
		endpoint:       *neoRPCEndpoint,
		walletPath:     *walletPath,
		walletPassword: *walletPassword,
		contractsDir:   *contractsDir,
		classifierHash: classifierHash,
		costWeight:     *costWeight,
		refundWait:     *refundWait,
		ownerClaimWait: *ownerClaimWait,
		anyClaimWait:   *anyClaimWait,
	}); err != nil {
		logger.Fatal("deployment failed", zap.Error(err))
	}
}

type deployPrm struct {
	endpoint       string
	walletPath     string
	walletPassword string
	contractsDir   string
	classifierHash util.Uint160
	costWeight     int64
	refundWait     int64
	ownerClaimWait int64
	anyClaimWait   int64
}

func deploy(logger *zap.Logger, prm deployPrm) error {
	w, err := wallet.NewWalletFromFile(prm.walletPath)
	if err != nil {
		return fmt.Errorf("open wallet: %w", err)
	}

	acc := w.GetAccount(w.GetChangeAddress())
	if acc == nil {
		return fmt.Errorf("no usable account in wallet %q", prm.walletPath)
	}
	if err := acc.Decrypt(prm.walletPassword, w.Scrypt); err != nil {
		return fmt.Errorf("unlock deployer account: %w", err)
	}

	c, err := rpcclient.New(context.Background(), prm.endpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("init RPC client: %w", err)
	}
	if err := c.Init(); err != nil {
		return fmt.Errorf("RPC handshake: %w", err)
	}

	act, err := actor.NewSimple(c, acc)
	if err != nil {
		return fmt.Errorf("init transaction sender: %w", err)
	}

	owner := acc.ScriptHash()

	ctrLedger, err := compileContract(owner, path.Join(prm.contractsDir, "ledger"))
	if err != nil {
		return fmt.Errorf("compile ledger contract: %w", err)
	}
	ctrIncentive, err := compileContract(owner, path.Join(prm.contractsDir, "incentive"))
	if err != nil {
		return fmt.Errorf("compile incentive contract: %w", err)
	}
	ctrTrainer, err := compileContract(owner, path.Join(prm.contractsDir, "trainer"))
	if err != nil {
		return fmt.Errorf("compile trainer contract: %w", err)
	}

	logger.Info("contracts compiled",
		zap.Stringer("ledger", ctrLedger.Hash),
		zap.Stringer("incentive", ctrIncentive.Hash),
		zap.Stringer("trainer", ctrTrainer.Hash))

	mgmt := management.New(act)

	deployOne := func(name string, ctr *contractSource, data []interface{}) error {
		logger.Info("deploying contract...", zap.String("name", name), zap.Stringer("address", ctr.Hash))

		txHash, vub, err := mgmt.Deploy(&ctr.NEF, &ctr.Manifest, data)
		_, err = act.Wait(txHash, vub, err)
		if err != nil {
			return fmt.Errorf("deploy %s contract: %w", name, err)
		}

		logger.Info("contract successfully deployed", zap.String("name", name))
		return nil
	}

	err = deployOne("ledger", ctrLedger, []interface{}{owner, ctrTrainer.Hash})
	if err != nil {
		return err
	}

	err = deployOne("incentive", ctrIncentive, []interface{}{
		owner, ctrTrainer.Hash,
		prm.costWeight, time.Now().UnixMilli(),
		prm.refundWait, prm.ownerClaimWait, prm.anyClaimWait,
	})
	if err != nil {
		return err
	}

	err = deployOne("trainer", ctrTrainer, []interface{}{
		owner, ctrLedger.Hash, ctrIncentive.Hash, prm.classifierHash,
	})
	if err != nil {
		return err
	}

	logger.Info("CoTrain contracts are on the chain", zap.Stringer("entry point", ctrTrainer.Hash))
	return nil
}

// compileContract compiles a contract directory and computes the address it
// will get when deployed by sender.
func compileContract(sender util.Uint160, ctrPath string) (*contractSource, error) {
	// nef.NewFile() cares about version a lot.
	config.Version = "0.90.0-test"

	ne, di, err := compiler.CompileWithOptions(ctrPath, nil, nil)
	if err != nil {
		return nil, err
	}

	conf, err := smartcontract.ParseContractConfig(path.Join(ctrPath, "config.yml"))
	if err != nil {
		return nil, err
	}

	o := &compiler.Options{}
	o.Name = conf.Name
	o.ContractEvents = conf.Events
	o.ContractSupportedStandards = conf.SupportedStandards
	o.Permissions = make([]manifest.Permission, len(conf.Permissions))
	for i := range conf.Permissions {
		o.Permissions[i] = manifest.Permission(conf.Permissions[i])
	}
	o.SafeMethods = conf.SafeMethods
	m, err := compiler.CreateManifest(di, o)
	if err != nil {
		return nil, err
	}

	return &contractSource{
		NEF:      *ne,
		Manifest: *m,
		Hash:     state.CreateContractHash(sender, ne.Checksum, m.Name),
	}, nil
}
