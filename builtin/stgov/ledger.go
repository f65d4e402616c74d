// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stgov implements the rebasing staked-governance ledger.
//
// Holders stake a governance token into a shared pool and receive a balance
// that grows with rewards. Ownership is tracked in shares; balances are
// derived from the pool's share price. The stake behind the pool sits in one
// deposit per delegatee in an external staking protocol, so each holder keeps
// directing the voting power of its balance.
//
// Every mutating method runs atomically: on error all changes made to the
// state, including those made by collaborators sharing the state, are
// reverted and no event is published.
package stgov

import (
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/withtally/stGOV-sub000/builtin/solidity"
	"github.com/withtally/stGOV-sub000/builtin/stgov/allowance"
	"github.com/withtally/stGOV-sub000/builtin/stgov/deposits"
	"github.com/withtally/stGOV-sub000/builtin/stgov/events"
	"github.com/withtally/stGOV-sub000/builtin/stgov/holders"
	"github.com/withtally/stGOV-sub000/builtin/stgov/intent"
	"github.com/withtally/stGOV-sub000/builtin/stgov/nonces"
	"github.com/withtally/stGOV-sub000/builtin/stgov/override"
	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/builtin/stgov/rewards"
	"github.com/withtally/stGOV-sub000/builtin/stgov/shares"
	"github.com/withtally/stGOV-sub000/log"
	"github.com/withtally/stGOV-sub000/state"
	"github.com/withtally/stGOV-sub000/stgov"
)

var logger = log.WithContext("pkg", "stgov")

func SetLogger(l log.Logger) {
	logger = l
}

var (
	slotOwner            = solidity.Slot("owner")
	slotDefaultDelegatee = solidity.Slot("default-delegatee")
	slotFixedWrapper     = solidity.Slot("fixed-wrapper")

	errNotInitialized     = errors.New("ledger not initialized")
	errAlreadyInitialized = reverts.New(reverts.KindInvalidParameter, "ledger already initialized")
)

// Params are the initial settings of a ledger.
type Params struct {
	Owner            stgov.Address
	DefaultDelegatee stgov.Address
	FeeCollector     stgov.Address
	FixedWrapper     stgov.Address

	PayoutAmount *big.Int
	FeeBips      uint64

	MaxOverrideTip                *big.Int
	MinQualifyingEarningPowerBips uint64
}

// Options tune a ledger instance.
type Options struct {
	// Domain separates signed intents. The verifying contract defaults to the ledger address.
	Domain intent.Domain
	// Clock returns unix seconds, used for signature expiry.
	Clock intent.Clock
}

// Ledger is the staked-governance ledger. It is not safe for concurrent use.
type Ledger struct {
	addr  stgov.Address
	state *state.State

	protocol StakingProtocol
	token    StakeToken
	queue    WithdrawalQueue

	shares    *shares.Service
	holders   *holders.Service
	deposits  *deposits.Service
	rewards   *rewards.Service
	override  *override.Service
	allowance *allowance.Service
	nonces    *nonces.Service
	verifier  *intent.Verifier

	owner            *solidity.Address
	defaultDelegatee *solidity.Address
	fixedWrapper     *solidity.Address

	buf     events.Buffer
	feed    events.Feed
	entered bool
}

// New creates a ledger whose storage lives at addr.
func New(addr stgov.Address, st *state.State, c Collaborators, opts Options) *Ledger {
	sctx := solidity.NewContext(addr, st)

	domain := opts.Domain
	if domain.VerifyingContract.IsZero() {
		domain.VerifyingContract = addr
	}
	clock := opts.Clock
	if clock == nil {
		clock = func() uint64 { return uint64(time.Now().Unix()) }
	}

	return &Ledger{
		addr:     addr,
		state:    st,
		protocol: c.Protocol,
		token:    c.StakeToken,
		queue:    c.Queue,

		shares:    shares.New(sctx),
		holders:   holders.New(sctx),
		deposits:  deposits.New(sctx),
		rewards:   rewards.New(sctx),
		override:  override.New(sctx),
		allowance: allowance.New(sctx),
		nonces:    nonces.New(sctx),
		verifier:  intent.NewVerifier(domain, clock),

		owner:            solidity.NewAddress(sctx, slotOwner),
		defaultDelegatee: solidity.NewAddress(sctx, slotDefaultDelegatee),
		fixedWrapper:     solidity.NewAddress(sctx, slotFixedWrapper),
	}
}

// Initialize stores p and opens the default deposit.
func (l *Ledger) Initialize(p *Params) error {
	return l.run("initialize", func() error {
		def, err := l.deposits.Default()
		if err != nil {
			return err
		}
		if def != 0 {
			return errAlreadyInitialized
		}
		if p.Owner.IsZero() || p.DefaultDelegatee.IsZero() {
			return reverts.New(reverts.KindInvalidParameter, "owner and default delegatee required")
		}
		l.owner.Set(p.Owner)
		l.defaultDelegatee.Set(p.DefaultDelegatee)
		l.fixedWrapper.Set(p.FixedWrapper)

		rp := &rewards.Params{PayoutAmount: p.PayoutAmount, FeeBips: p.FeeBips, FeeCollector: p.FeeCollector}
		if err := l.rewards.SetParams(rp); err != nil {
			return err
		}
		maxTip := p.MaxOverrideTip
		if maxTip == nil {
			maxTip = new(big.Int)
		}
		if err := l.override.SetMaxTip(maxTip); err != nil {
			return err
		}
		if err := l.override.SetMinBips(p.MinQualifyingEarningPowerBips); err != nil {
			return err
		}

		id, err := l.protocol.CreateDeposit(l.addr, p.DefaultDelegatee)
		if err != nil {
			return errors.Wrap(err, "create default deposit")
		}
		if err := l.deposits.RegisterDefault(id, p.DefaultDelegatee); err != nil {
			return err
		}
		l.buf.Emit(&events.DepositInitialized{Delegatee: p.DefaultDelegatee, DepositID: id})
		l.buf.Emit(&events.RewardParametersSet{PayoutAmount: rp.PayoutAmount, FeeBips: rp.FeeBips, FeeCollector: rp.FeeCollector})
		l.buf.Emit(&events.OverrideParametersSet{MaxOverrideTip: maxTip, MinQualifyingEarningPowerBips: p.MinQualifyingEarningPowerBips})
		l.buf.Emit(&events.OwnershipTransferred{Owner: p.Owner})

		logger.Info("ledger initialized", "owner", p.Owner, "defaultDelegatee", p.DefaultDelegatee, "defaultDeposit", id)
		return nil
	})
}

// exec runs a mutating operation on an initialized ledger.
func (l *Ledger) exec(op string, fn func() error) error {
	return l.run(op, func() error {
		def, err := l.deposits.Default()
		if err != nil {
			return err
		}
		if def == 0 {
			return errNotInitialized
		}
		return fn()
	})
}

// run executes fn under the reentrancy guard inside a state checkpoint.
// Buffered events are published only when fn succeeds.
func (l *Ledger) run(op string, fn func() error) (err error) {
	if l.entered {
		metricOps().AddWithLabel(1, map[string]string{"op": op, "outcome": outcome(reverts.ErrReentrantCall)})
		return reverts.ErrReentrantCall
	}
	l.entered = true
	defer func() { l.entered = false }()

	start := time.Now()
	revision := l.state.NewCheckpoint()
	l.buf.Reset(op)

	err = fn()
	metricOps().AddWithLabel(1, map[string]string{"op": op, "outcome": outcome(err)})
	metricOpDuration().Observe(time.Since(start).Microseconds())

	if err != nil {
		l.state.RevertTo(revision)
		l.buf.Drain()
		if reverts.IsRevertErr(err) {
			logger.Debug("operation reverted", "op", op, "error", err)
		} else {
			logger.Error("operation failed", "op", op, "error", err)
		}
		return err
	}

	l.feed.Publish(l.buf.Drain())
	l.updateGauges()
	return nil
}

func (l *Ledger) updateGauges() {
	if supply, err := l.shares.TotalSupply(); err == nil {
		metricTotalSupply().Set(new(big.Int).Quo(supply, oneToken).Int64())
	}
	if n, err := l.holders.Count(); err == nil {
		metricHolders().Set(int64(n))
	}
}

// Subscribe delivers the events of every successful operation to ch.
// Publishing blocks until each subscriber accepted the event.
func (l *Ledger) Subscribe(ch chan<- events.Log) events.Subscription {
	return l.feed.Subscribe(ch)
}

// Address returns the account that owns the ledger's deposits and custody.
func (l *Ledger) Address() stgov.Address {
	return l.addr
}

//
// Getters - no state change
//

func (l *Ledger) TotalSupply() (*big.Int, error) {
	return l.shares.TotalSupply()
}

func (l *Ledger) TotalShares() (*big.Int, error) {
	return l.shares.TotalShares()
}

func (l *Ledger) SharesOf(addr stgov.Address) (*big.Int, error) {
	id, ok, err := l.holders.Lookup(addr)
	if err != nil || !ok {
		return new(big.Int), err
	}
	return l.shares.SharesOf(id)
}

func (l *Ledger) BalanceOf(addr stgov.Address) (*big.Int, error) {
	id, ok, err := l.holders.Lookup(addr)
	if err != nil || !ok {
		return new(big.Int), err
	}
	return l.shares.BalanceOf(id)
}

// BalanceCheckpoint returns the delegated part of the holder's balance.
func (l *Ledger) BalanceCheckpoint(addr stgov.Address) (*big.Int, error) {
	id, ok, err := l.holders.Lookup(addr)
	if err != nil || !ok {
		return new(big.Int), err
	}
	h, err := l.holders.Get(id)
	if err != nil {
		return nil, err
	}
	balance, err := l.shares.BalanceOf(id)
	if err != nil {
		return nil, err
	}
	return h.EffectiveCheckpoint(balance), nil
}

// DepositIDOf returns the deposit receiving the holder's stake.
func (l *Ledger) DepositIDOf(addr stgov.Address) (stgov.DepositID, error) {
	id, ok, err := l.holders.Lookup(addr)
	if err != nil {
		return 0, err
	}
	if !ok {
		return l.deposits.Default()
	}
	h, err := l.holders.Get(id)
	if err != nil {
		return 0, err
	}
	return h.DepositID, nil
}

// DelegateeOf returns the delegatee the holder's deposit was created for.
func (l *Ledger) DelegateeOf(addr stgov.Address) (stgov.Address, error) {
	id, err := l.DepositIDOf(addr)
	if err != nil {
		return stgov.Address{}, err
	}
	def, err := l.deposits.Default()
	if err != nil {
		return stgov.Address{}, err
	}
	if id == def {
		return l.defaultDelegatee.Get()
	}
	rec, err := l.deposits.Get(id)
	if err != nil {
		return stgov.Address{}, err
	}
	return rec.Delegatee, nil
}

// Deposit returns the registry record of an owned deposit.
func (l *Ledger) Deposit(id stgov.DepositID) (*deposits.Deposit, error) {
	return l.deposits.Get(id)
}

// Deposits returns every owned deposit in creation order.
func (l *Ledger) Deposits() ([]stgov.DepositID, error) {
	return l.deposits.IDs()
}

func (l *Ledger) DefaultDeposit() (stgov.DepositID, error) {
	return l.deposits.Default()
}

func (l *Ledger) DefaultDelegatee() (stgov.Address, error) {
	return l.defaultDelegatee.Get()
}

func (l *Ledger) Owner() (stgov.Address, error) {
	return l.owner.Get()
}

func (l *Ledger) FixedWrapper() (stgov.Address, error) {
	return l.fixedWrapper.Get()
}

func (l *Ledger) Allowance(owner, spender stgov.Address) (*big.Int, error) {
	return l.allowance.Allowance(owner, spender)
}

// Nonce returns the next nonce a holder signs with.
func (l *Ledger) Nonce(addr stgov.Address) (uint64, error) {
	return l.nonces.Current(addr)
}

func (l *Ledger) RewardParameters() (*rewards.Params, error) {
	return l.rewards.Params()
}

func (l *Ledger) MaxOverrideTip() (*big.Int, error) {
	return l.override.MaxTip()
}

func (l *Ledger) MinQualifyingEarningPowerBips() (uint64, error) {
	return l.override.MinBips()
}

// Verifier returns the verifier of signed intents, which also signs them for clients.
func (l *Ledger) Verifier() *intent.Verifier {
	return l.verifier
}
