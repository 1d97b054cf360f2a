// Package verifycmd implements the "verify" witnessctl subcommand: load
// a JSON fixture describing a signer, a match context, and an attribute
// vector, then run it through the scope evaluator and the
// attribute framework and report the outcome.
package verifycmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nan01ab/neo/cmd/witnessctl/internal/serve"
	"github.com/nan01ab/neo/config"
	"github.com/nan01ab/neo/pkg/chainstore"
	"github.com/nan01ab/neo/pkg/committee"
	"github.com/nan01ab/neo/pkg/core/transaction"
	"github.com/nan01ab/neo/pkg/crypto/keys"
	"github.com/nan01ab/neo/pkg/manifeststore"
	"github.com/nan01ab/neo/pkg/oraclestate"
	"github.com/nan01ab/neo/pkg/util"
	"github.com/nan01ab/neo/pkg/verify"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// Command returns the "verify" subcommand.
func Command(log *zap.Logger) cli.Command {
	return cli.Command{
		Name:      "verify",
		Usage:     "evaluate a signer+context+attribute fixture",
		ArgsUsage: "<fixture.json>",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "config", Value: "", Usage: "protocol configuration YAML (defaults to config.Default())"},
			cli.StringFlag{Name: "chain-db", Value: "witnessctl-chain.db", Usage: "bbolt file backing the ledger/clock view"},
			cli.StringFlag{Name: "manifest-db", Value: "witnessctl-manifest.db", Usage: "bbolt file backing the manifest-group view"},
		},
		Action: func(c *cli.Context) error {
			return run(log, c.Args().First(), c.String("config"), c.String("chain-db"), c.String("manifest-db"))
		},
	}
}

// fixture is the on-disk JSON shape a verify run consumes.
type fixture struct {
	Signer     transaction.Signer      `json:"signer"`
	Context    contextFixture          `json:"context"`
	Attributes []transaction.Attribute `json:"attributes"`
}

type contextFixture struct {
	Calling util.Uint160 `json:"calling"`
	Current util.Uint160 `json:"current"`
	Entry   util.Uint160 `json:"entry"`
}

// fixtureContext is a MatchContext that answers manifest-group queries
// against a real manifeststore.Store: a fixture run exercises the
// scope/condition algebra against fixed script hashes plus whatever
// contract groups the caller has recorded on disk.
type fixtureContext struct {
	contextFixture
	manifests *manifeststore.Store
}

func (c fixtureContext) GetCallingScriptHash() util.Uint160 { return c.Calling }
func (c fixtureContext) GetCurrentScriptHash() util.Uint160 { return c.Current }
func (c fixtureContext) GetEntryScriptHash() util.Uint160   { return c.Entry }
func (c fixtureContext) CallingScriptHasGroup(pk *keys.PublicKey) (bool, error) {
	return c.manifests.HasGroup(c.Calling, pk)
}
func (c fixtureContext) CurrentScriptHasGroup(pk *keys.PublicKey) (bool, error) {
	return c.manifests.HasGroup(c.Current, pk)
}

// subject adapts a single fixture signer into a transaction.VerificationSubject:
// a fixture names exactly one signer, which doubles as fee payer.
type subject struct {
	signer transaction.Signer
}

func (s subject) Signers() []transaction.Signer { return []transaction.Signer{s.signer} }
func (s subject) FeePayer() util.Uint160        { return s.signer.Account }

// notaryFlag adapts config.ProtocolConfiguration.NotaryEnabled into a
// transaction.NotaryState.
type notaryFlag bool

func (f notaryFlag) IsEnabled() bool { return bool(f) }

// clauseLabel names the scope clause Authorizes is most likely to have
// matched on, in the same left-to-right priority Authorizes itself
// checks; it is a reporting label only; prometheus metrics and the
// decision feed's message mirror it.
func clauseLabel(s transaction.Signer) string {
	switch {
	case s.Scopes&transaction.Global != 0:
		return "global"
	case s.Scopes&transaction.CalledByEntry != 0:
		return "calledbyentry"
	case s.Scopes&transaction.CustomContracts != 0:
		return "customcontracts"
	case s.Scopes&transaction.CustomGroups != 0:
		return "customgroups"
	case s.Scopes&transaction.Rules != 0:
		return "rules"
	default:
		return "self"
	}
}

func run(log *zap.Logger, path, configPath, chainDBPath, manifestDBPath string) error {
	if path == "" {
		return fmt.Errorf("verify: missing fixture path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("verify: read %s: %w", path, err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return fmt.Errorf("verify: parse %s: %w", path, err)
	}
	if err := verify.CheckAttributeCardinality(fx.Attributes); err != nil {
		log.Error("attribute cardinality rejected", zap.Error(err))
		return err
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
	}

	chain, err := chainstore.Open(chainDBPath)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	defer chain.Close() //nolint:errcheck

	manifests, err := manifeststore.Open(manifestDBPath, cfg.ProtocolConfiguration.ManifestCacheSize)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	defer manifests.Close() //nolint:errcheck

	committeeSet, err := committee.New(log, cfg.ProtocolConfiguration.Committee)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	oracles := oraclestate.New()

	views := transaction.Views{
		Ledger:    chain,
		Committee: committeeSet,
		Oracle:    oracles,
		Clock:     chain,
		Notary:    notaryFlag(cfg.ProtocolConfiguration.NotaryEnabled),
	}
	subj := subject{signer: fx.Signer}

	attrResult, err := verify.VerifyAttributes(fx.Attributes, views, subj)
	if err != nil {
		log.Error("attribute verification failed", zap.Error(err))
		return err
	}
	fee := verify.ComputeNetworkFeeContribution(fx.Attributes, subj,
		cfg.ProtocolConfiguration.BaseExecFee, cfg.ProtocolConfiguration.NotaryServiceFeePerKey)
	log.Info("attribute verification",
		zap.Bool("ok", attrResult.OK()),
		zap.String("reason", attrResult.Reason()),
		zap.Int64("network_fee", fee))
	if !attrResult.OK() {
		fmt.Printf("DENY: attributes rejected: %s\n", attrResult.Reason())
		serve.RecordDecision(clauseLabel(fx.Signer), "deny")
		serve.Broadcast([]byte(fmt.Sprintf(`{"account":%q,"authorized":false,"reason":%q}`,
			fx.Signer.Account.StringLE(), attrResult.Reason())))
		return nil
	}

	ctx := fixtureContext{contextFixture: fx.Context, manifests: manifests}
	ok, err := fx.Signer.Authorizes(ctx)
	if err != nil {
		log.Error("scope evaluation failed", zap.Error(err))
		return err
	}
	clause := clauseLabel(fx.Signer)
	log.Info("scope decision",
		zap.Stringer("account", fx.Signer.Account),
		zap.String("scopes", fx.Signer.Scopes.String()),
		zap.Int64("network_fee", fee),
		zap.Bool("authorized", ok))

	outcome := "deny"
	if ok {
		outcome = "allow"
	}
	serve.RecordDecision(clause, outcome)
	serve.Broadcast([]byte(fmt.Sprintf(`{"account":%q,"authorized":%t,"network_fee":%d}`,
		fx.Signer.Account.StringLE(), ok, fee)))

	if !ok {
		fmt.Println("DENY: signer does not authorize this context")
		return nil
	}
	fmt.Printf("ALLOW: signer authorizes this context (network fee contribution: %d)\n", fee)
	return nil
}
