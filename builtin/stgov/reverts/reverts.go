// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a business rule violation.
type Kind uint8

const (
	KindInsufficientBalance Kind = iota + 1
	KindInsufficientAllowance
	KindInvalidAmount
	KindInvalidDeposit
	KindEarningPowerNotQualified
	KindInvalidOverride
	KindGreaterThanMaxTip
	KindInsufficientRewards
	KindInvalidSignature
	KindSignatureExpired
	KindInvalidNonce
	KindInvalidParameter
	KindUnauthorized
	KindReentrantCall
)

var kindNames = map[Kind]string{
	KindInsufficientBalance:      "InsufficientBalance",
	KindInsufficientAllowance:    "InsufficientAllowance",
	KindInvalidAmount:            "InvalidAmount",
	KindInvalidDeposit:           "InvalidDeposit",
	KindEarningPowerNotQualified: "EarningPowerNotQualified",
	KindInvalidOverride:          "InvalidOverride",
	KindGreaterThanMaxTip:        "GreaterThanMaxTip",
	KindInsufficientRewards:      "InsufficientRewards",
	KindInvalidSignature:         "InvalidSignature",
	KindSignatureExpired:         "SignatureExpired",
	KindInvalidNonce:             "InvalidNonce",
	KindInvalidParameter:         "InvalidParameter",
	KindUnauthorized:             "Unauthorized",
	KindReentrantCall:            "ReentrantCall",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var (
	ErrInsufficientBalance      = New(KindInsufficientBalance, "insufficient balance")
	ErrInsufficientAllowance    = New(KindInsufficientAllowance, "insufficient allowance")
	ErrInvalidAmount            = New(KindInvalidAmount, "invalid amount")
	ErrInvalidDeposit           = New(KindInvalidDeposit, "invalid deposit")
	ErrEarningPowerNotQualified = New(KindEarningPowerNotQualified, "earning power not qualified")
	ErrInvalidOverride          = New(KindInvalidOverride, "invalid override")
	ErrGreaterThanMaxTip        = New(KindGreaterThanMaxTip, "tip greater than max tip")
	ErrInsufficientRewards      = New(KindInsufficientRewards, "insufficient rewards")
	ErrInvalidSignature         = New(KindInvalidSignature, "invalid signature")
	ErrSignatureExpired         = New(KindSignatureExpired, "signature expired")
	ErrInvalidNonce             = New(KindInvalidNonce, "invalid nonce")
	ErrInvalidParameter         = New(KindInvalidParameter, "invalid parameter")
	ErrUnauthorized             = New(KindUnauthorized, "unauthorized")
	ErrReentrantCall            = New(KindReentrantCall, "reentrant call")
)

type ErrRevert struct {
	kind    Kind
	message string
	cause   error
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

// Newf creates a revert of kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *ErrRevert {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap creates a revert of kind caused by err.
func Wrap(kind Kind, err error, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message + ": " + err.Error(),
		cause:   err,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

func (e *ErrRevert) Unwrap() error {
	return e.cause
}

// Is matches reverts by kind, so detailed reverts match the package sentinels.
func (e *ErrRevert) Is(target error) bool {
	t, ok := target.(*ErrRevert)
	return ok && t.kind == e.kind
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of the revert in err's chain, zero if there is none.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind
	}
	return 0
}
