// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stgov

import (
	"math/big"

	"github.com/withtally/stGOV-sub000/builtin/stgov/reverts"
	"github.com/withtally/stGOV-sub000/metrics"
)

var (
	metricOps         = metrics.LazyLoadCounterVec("ops", []string{"op", "outcome"})
	metricOpDuration  = metrics.LazyLoadHistogram("op_duration_us", metrics.BucketOps)
	metricTotalSupply = metrics.LazyLoadGauge("total_supply_tokens")
	metricHolders     = metrics.LazyLoadGauge("holders")

	oneToken = big.NewInt(1e18)
)

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := reverts.KindOf(err); kind != 0 {
		return kind.String()
	}
	return "error"
}
