// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withtally/stGOV-sub000/builtin/staking"
	ledger "github.com/withtally/stGOV-sub000/builtin/stgov"
	"github.com/withtally/stGOV-sub000/builtin/token"
	"github.com/withtally/stGOV-sub000/builtin/withdrawals"
	"github.com/withtally/stGOV-sub000/lvldb"
	"github.com/withtally/stGOV-sub000/state"
	"github.com/withtally/stGOV-sub000/stgov"
)

const sample = `
owner: "0x000000000000000000000000000000000000000a"
default-delegatee: "0x000000000000000000000000000000000000000b"
fee-collector: "0x000000000000000000000000000000000000000c"
rewards:
  payout-amount: "10000000000000000000"
  fee-bips: 1000
override:
  min-qualifying-earning-power-bips: 7500
domain:
  chain-id: 39
withdrawal-delay: 72h
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	p, err := cfg.LedgerParams()
	require.NoError(t, err)
	assert.Equal(t, stgov.MustParseAddress("0x000000000000000000000000000000000000000a"), p.Owner)
	assert.Equal(t, stgov.MustParseAddress("0x000000000000000000000000000000000000000b"), p.DefaultDelegatee)
	assert.True(t, p.FixedWrapper.IsZero())
	assert.Equal(t, stgov.Ether(10).String(), p.PayoutAmount.String())
	assert.Equal(t, uint64(1000), p.FeeBips)
	assert.Equal(t, stgov.Ether(1).String(), p.MaxOverrideTip.String())
	assert.Equal(t, uint64(7500), p.MinQualifyingEarningPowerBips)

	d, err := cfg.IntentDomain()
	require.NoError(t, err)
	assert.Equal(t, "Staked Governance", d.Name)
	assert.Equal(t, int64(39), d.ChainID.Int64())
	assert.True(t, d.VerifyingContract.IsZero())

	assert.Equal(t, 72*time.Hour, cfg.WithdrawalDelay)
	assert.Equal(t, uint64(259200), cfg.WithdrawalDelaySeconds())
}

func TestParseInvalid(t *testing.T) {
	base := "owner: \"0x000000000000000000000000000000000000000a\"\ndefault-delegatee: \"0x000000000000000000000000000000000000000b\"\n"
	tests := []struct {
		name string
		yaml string
	}{
		{"missing owner", "default-delegatee: \"0x000000000000000000000000000000000000000b\"\n"},
		{"bad address", base + "fee-collector: \"0x12\"\n"},
		{"bad amount", base + "rewards:\n  payout-amount: \"1e18\"\n"},
		{"negative amount", base + "override:\n  max-tip: \"-1\"\n"},
		{"fee above cap", base + "fee-collector: \"0x000000000000000000000000000000000000000c\"\nrewards:\n  fee-bips: 2001\n"},
		{"fee without collector", base + "rewards:\n  fee-bips: 10\n"},
		{"tip above cap", base + "override:\n  max-tip: \"2000000000000000000001\"\n"},
		{"bips above cap", base + "override:\n  min-qualifying-earning-power-bips: 20001\n"},
		{"empty domain", base + "domain:\n  name: \"\"\n"},
		{"negative delay", base + "withdrawal-delay: -1s\n"},
		{"delay too long", base + "withdrawal-delay: 721h\n"},
		{"malformed", "owner: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stgov.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), cfg.Rewards.FeeBips)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultNeedsAddresses(t *testing.T) {
	assert.Error(t, Default().Validate())
}

func TestInitializeLedger(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	st := state.New(db)

	stake := token.New(stgov.BytesToAddress([]byte("stake")), st)
	protocol := staking.New(stgov.BytesToAddress([]byte("staking")), st, stake, token.New(stgov.BytesToAddress([]byte("reward")), st))
	gate := withdrawals.New(stgov.BytesToAddress([]byte("gate")), st, stake, nil)
	require.NoError(t, gate.SetDelay(cfg.WithdrawalDelaySeconds()))

	domain, err := cfg.IntentDomain()
	require.NoError(t, err)
	l := ledger.New(stgov.BytesToAddress([]byte("stgov")), st,
		ledger.Collaborators{Protocol: protocol, StakeToken: stake, Queue: gate},
		ledger.Options{Domain: domain})

	params, err := cfg.LedgerParams()
	require.NoError(t, err)
	require.NoError(t, l.Initialize(params))

	owner, err := l.Owner()
	require.NoError(t, err)
	assert.Equal(t, params.Owner, owner)
	rp, err := l.RewardParameters()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), rp.FeeBips)
	bips, err := l.MinQualifyingEarningPowerBips()
	require.NoError(t, err)
	assert.Equal(t, uint64(7500), bips)
	delay, err := gate.Delay()
	require.NoError(t, err)
	assert.Equal(t, uint64(259200), delay)
	assert.Equal(t, int64(39), l.Verifier().Domain().ChainID.Int64())
}
