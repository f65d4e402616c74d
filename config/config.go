// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config loads ledger settings from YAML.
//
// Addresses are 0x-prefixed hex strings and amounts are decimal strings in
// the token's smallest unit.
package config

import (
	"math/big"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	ledger "github.com/withtally/stGOV-sub000/builtin/stgov"
	"github.com/withtally/stGOV-sub000/builtin/stgov/intent"
	"github.com/withtally/stGOV-sub000/builtin/stgov/override"
	"github.com/withtally/stGOV-sub000/builtin/stgov/rewards"
	"github.com/withtally/stGOV-sub000/builtin/withdrawals"
	"github.com/withtally/stGOV-sub000/stgov"
)

type Config struct {
	Owner            string `yaml:"owner"`
	DefaultDelegatee string `yaml:"default-delegatee"`
	FeeCollector     string `yaml:"fee-collector"`
	FixedWrapper     string `yaml:"fixed-wrapper"`

	Rewards  Rewards  `yaml:"rewards"`
	Override Override `yaml:"override"`
	Domain   Domain   `yaml:"domain"`

	WithdrawalDelay time.Duration `yaml:"withdrawal-delay"`
}

type Rewards struct {
	PayoutAmount string `yaml:"payout-amount"`
	FeeBips      uint64 `yaml:"fee-bips"`
}

type Override struct {
	MaxTip                        string `yaml:"max-tip"`
	MinQualifyingEarningPowerBips uint64 `yaml:"min-qualifying-earning-power-bips"`
}

type Domain struct {
	Name              string `yaml:"name"`
	Version           string `yaml:"version"`
	ChainID           uint64 `yaml:"chain-id"`
	VerifyingContract string `yaml:"verifying-contract"`
}

// Default returns the settings every loaded file is applied on top of.
// Owner and default delegatee have no default.
func Default() *Config {
	return &Config{
		Rewards: Rewards{
			PayoutAmount: stgov.Ether(25).String(),
		},
		Override: Override{
			MaxTip:                        stgov.Ether(1).String(),
			MinQualifyingEarningPowerBips: 5_000,
		},
		Domain: Domain{
			Name:    "Staked Governance",
			Version: "1",
			ChainID: 1,
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks addresses, amounts and the parameter caps.
func (c *Config) Validate() error {
	if _, err := c.LedgerParams(); err != nil {
		return err
	}
	if _, err := c.IntentDomain(); err != nil {
		return err
	}
	if c.WithdrawalDelay < 0 {
		return errors.New("withdrawal-delay: negative")
	}
	if c.WithdrawalDelaySeconds() > withdrawals.MaxDelay {
		return errors.Errorf("withdrawal-delay: %v above %ds", c.WithdrawalDelay, withdrawals.MaxDelay)
	}
	return nil
}

// LedgerParams converts the settings into the ledger's initial parameters.
func (c *Config) LedgerParams() (*ledger.Params, error) {
	var (
		p   ledger.Params
		err error
	)
	if p.Owner, err = parseAddress("owner", c.Owner, true); err != nil {
		return nil, err
	}
	if p.DefaultDelegatee, err = parseAddress("default-delegatee", c.DefaultDelegatee, true); err != nil {
		return nil, err
	}
	if p.FeeCollector, err = parseAddress("fee-collector", c.FeeCollector, false); err != nil {
		return nil, err
	}
	if p.FixedWrapper, err = parseAddress("fixed-wrapper", c.FixedWrapper, false); err != nil {
		return nil, err
	}
	if p.PayoutAmount, err = parseAmount("rewards.payout-amount", c.Rewards.PayoutAmount); err != nil {
		return nil, err
	}
	if p.MaxOverrideTip, err = parseAmount("override.max-tip", c.Override.MaxTip); err != nil {
		return nil, err
	}
	p.FeeBips = c.Rewards.FeeBips
	p.MinQualifyingEarningPowerBips = c.Override.MinQualifyingEarningPowerBips

	rp := rewards.Params{PayoutAmount: p.PayoutAmount, FeeBips: p.FeeBips, FeeCollector: p.FeeCollector}
	if err := rp.Validate(); err != nil {
		return nil, errors.Wrap(err, "rewards")
	}
	if p.MaxOverrideTip.Cmp(override.MaxOverrideTipCap) > 0 {
		return nil, errors.Errorf("override.max-tip: %v above %v", p.MaxOverrideTip, override.MaxOverrideTipCap)
	}
	if p.MinQualifyingEarningPowerBips > override.MinQualifyingEarningPowerBipsCap {
		return nil, errors.Errorf("override.min-qualifying-earning-power-bips: %d above %d",
			p.MinQualifyingEarningPowerBips, override.MinQualifyingEarningPowerBipsCap)
	}
	return &p, nil
}

// IntentDomain returns the domain signed intents are bound to. A zero
// verifying contract is replaced by the ledger address.
func (c *Config) IntentDomain() (intent.Domain, error) {
	contract, err := parseAddress("domain.verifying-contract", c.Domain.VerifyingContract, false)
	if err != nil {
		return intent.Domain{}, err
	}
	if c.Domain.Name == "" {
		return intent.Domain{}, errors.New("domain.name: empty")
	}
	return intent.Domain{
		Name:              c.Domain.Name,
		Version:           c.Domain.Version,
		ChainID:           new(big.Int).SetUint64(c.Domain.ChainID),
		VerifyingContract: contract,
	}, nil
}

// WithdrawalDelaySeconds returns the withdrawal delay in whole seconds.
func (c *Config) WithdrawalDelaySeconds() uint64 {
	return uint64(c.WithdrawalDelay / time.Second)
}

func parseAddress(field, s string, required bool) (stgov.Address, error) {
	if s == "" {
		if required {
			return stgov.Address{}, errors.Errorf("%s: required", field)
		}
		return stgov.Address{}, nil
	}
	addr, err := stgov.ParseAddress(s)
	if err != nil {
		return stgov.Address{}, errors.Wrap(err, field)
	}
	if required && addr.IsZero() {
		return stgov.Address{}, errors.Errorf("%s: zero address", field)
	}
	return *addr, nil
}

func parseAmount(field, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("%s: invalid amount %q", field, s)
	}
	if v.Sign() < 0 {
		return nil, errors.Errorf("%s: negative amount", field)
	}
	return v, nil
}
