// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithContextFollowsDefault(t *testing.T) {
	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	SetDefault(NewTerminalHandler(&buf, LevelDebug, false))
	t.Cleanup(func() { SetDefault(DiscardHandler()) })

	logger.With("holder", "0x01").Info("staked", "amount", big.NewInt(1000))
	out := buf.String()
	assert.Contains(t, out, "staked")
	assert.Contains(t, out, "pkg=test")
	assert.Contains(t, out, "holder=0x01")
	assert.Contains(t, out, "amount=1000")

	buf.Reset()
	logger.Trace("hidden")
	assert.Empty(t, buf.String())
	assert.False(t, logger.Enabled(LevelTrace))
	assert.True(t, logger.Enabled(LevelInfo))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	assert.NoError(t, err)
	assert.Equal(t, LevelDebug, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestTerminalHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewTerminalHandler(&buf, LevelWarn, false))
	t.Cleanup(func() { SetDefault(DiscardHandler()) })

	Info("quiet")
	assert.Empty(t, buf.String())
	Warn("loud", "n", 1)
	assert.Contains(t, buf.String(), "loud")
	assert.Contains(t, buf.String(), "n=1")
}
