// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package intent

import (
	"crypto/ecdsa"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"

	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/stgov"
)

// Domain separates signatures between ledgers and chains.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract stgov.Address
}

// Nonces consumes holder nonces.
type Nonces interface {
	Use(holder stgov.Address, nonce uint64) error
}

// Clock returns the current unix time in seconds.
type Clock func() uint64

var domainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

var actionTypes = map[Action][]apitypes.Type{
	ActionStake: {
		{Name: "account", Type: "address"},
		{Name: "amount", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "expiry", Type: "uint256"},
	},
	ActionUnstake: {
		{Name: "account", Type: "address"},
		{Name: "amount", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "expiry", Type: "uint256"},
	},
	ActionUpdateDeposit: {
		{Name: "account", Type: "address"},
		{Name: "newDepositId", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "expiry", Type: "uint256"},
	},
	ActionTransfer: {
		{Name: "account", Type: "address"},
		{Name: "to", Type: "address"},
		{Name: "amount", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "expiry", Type: "uint256"},
	},
	ActionPermit: {
		{Name: "owner", Type: "address"},
		{Name: "spender", Type: "address"},
		{Name: "value", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "deadline", Type: "uint256"},
	},
	ActionDelegate: {
		{Name: "account", Type: "address"},
		{Name: "delegatee", Type: "address"},
		{Name: "nonce", Type: "uint256"},
		{Name: "expiry", Type: "uint256"},
	},
	ActionStakeWithDelegatee: {
		{Name: "account", Type: "address"},
		{Name: "amount", Type: "uint256"},
		{Name: "delegatee", Type: "address"},
		{Name: "nonce", Type: "uint256"},
		{Name: "expiry", Type: "uint256"},
	},
}

// Verifier checks signed intents against one domain.
type Verifier struct {
	domain Domain
	now    Clock
}

func NewVerifier(domain Domain, now Clock) *Verifier {
	return &Verifier{domain: domain, now: now}
}

func (v *Verifier) Domain() Domain {
	return v.domain
}

func hexAddr(a stgov.Address) string {
	return common.Address(a).Hex()
}

func amountString(a *big.Int) string {
	if a == nil {
		return "0"
	}
	return a.String()
}

func (v *Verifier) typedData(in *Intent) (apitypes.TypedData, error) {
	fields, ok := actionTypes[in.Action]
	if !ok {
		return apitypes.TypedData{}, errors.Errorf("unknown action %v", in.Action)
	}
	nonce := strconv.FormatUint(in.Nonce, 10)
	expiry := strconv.FormatUint(in.Expiry, 10)

	var msg apitypes.TypedDataMessage
	switch in.Action {
	case ActionStake, ActionUnstake:
		msg = apitypes.TypedDataMessage{
			"account": hexAddr(in.Holder),
			"amount":  amountString(in.Amount),
			"nonce":   nonce,
			"expiry":  expiry,
		}
	case ActionUpdateDeposit:
		msg = apitypes.TypedDataMessage{
			"account":      hexAddr(in.Holder),
			"newDepositId": in.DepositID.String(),
			"nonce":        nonce,
			"expiry":       expiry,
		}
	case ActionTransfer:
		msg = apitypes.TypedDataMessage{
			"account": hexAddr(in.Holder),
			"to":      hexAddr(in.To),
			"amount":  amountString(in.Amount),
			"nonce":   nonce,
			"expiry":  expiry,
		}
	case ActionPermit:
		msg = apitypes.TypedDataMessage{
			"owner":    hexAddr(in.Holder),
			"spender":  hexAddr(in.To),
			"value":    amountString(in.Amount),
			"nonce":    nonce,
			"deadline": expiry,
		}
	case ActionDelegate:
		msg = apitypes.TypedDataMessage{
			"account":   hexAddr(in.Holder),
			"delegatee": hexAddr(in.Delegatee),
			"nonce":     nonce,
			"expiry":    expiry,
		}
	case ActionStakeWithDelegatee:
		msg = apitypes.TypedDataMessage{
			"account":   hexAddr(in.Holder),
			"amount":    amountString(in.Amount),
			"delegatee": hexAddr(in.Delegatee),
			"nonce":     nonce,
			"expiry":    expiry,
		}
	}

	chainID := new(big.Int)
	if v.domain.ChainID != nil {
		chainID.Set(v.domain.ChainID)
	}
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain":     domainType,
			in.Action.String(): fields,
		},
		PrimaryType: in.Action.String(),
		Domain: apitypes.TypedDataDomain{
			Name:              v.domain.Name,
			Version:           v.domain.Version,
			ChainId:           (*math.HexOrDecimal256)(chainID),
			VerifyingContract: hexAddr(v.domain.VerifyingContract),
		},
		Message: msg,
	}, nil
}

// Hash returns the EIP-712 digest a holder signs for in.
func (v *Verifier) Hash(in *Intent) (stgov.Bytes32, error) {
	td, err := v.typedData(in)
	if err != nil {
		return stgov.Bytes32{}, err
	}
	hash, _, err := apitypes.TypedDataAndHash(td)
	if err != nil {
		return stgov.Bytes32{}, errors.Wrap(err, "hash typed data")
	}
	return stgov.BytesToBytes32(hash), nil
}

// Sign signs in with key. The recovery id is returned as 27 or 28.
func (v *Verifier) Sign(in *Intent, key *ecdsa.PrivateKey) ([]byte, error) {
	hash, err := v.Hash(in)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(hash.Bytes(), key)
	if err != nil {
		return nil, err
	}
	sig[64] += 27
	return sig, nil
}

func (v *Verifier) signer(in *Intent, sig []byte) (stgov.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return stgov.Address{}, reverts.Newf(reverts.KindInvalidSignature, "signature length %d", len(sig))
	}
	hash, err := v.Hash(in)
	if err != nil {
		return stgov.Address{}, err
	}
	normalized := make([]byte, len(sig))
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	pub, err := crypto.SigToPub(hash.Bytes(), normalized)
	if err != nil {
		return stgov.Address{}, reverts.Wrap(reverts.KindInvalidSignature, err, "recover signer")
	}
	return stgov.Address(crypto.PubkeyToAddress(*pub)), nil
}

// Verify checks expiry, signature and nonce of in, consuming the nonce on success.
func (v *Verifier) Verify(in Intent, sig []byte, nonces Nonces) (*Validated, error) {
	if now := v.now(); now > in.Expiry {
		return nil, reverts.Newf(reverts.KindSignatureExpired, "expired at %d, now %d", in.Expiry, now)
	}
	signer, err := v.signer(&in, sig)
	if err != nil {
		return nil, err
	}
	if signer != in.Holder {
		return nil, reverts.Newf(reverts.KindInvalidSignature, "signed by %v, not %v", signer, in.Holder)
	}
	if err := nonces.Use(in.Holder, in.Nonce); err != nil {
		return nil, err
	}
	return &Validated{intent: in}, nil
}
