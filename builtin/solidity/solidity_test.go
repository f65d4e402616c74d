// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withtally/stGOV-sub000/lvldb"
	"github.com/withtally/stGOV-sub000/state"
	"github.com/withtally/stGOV-sub000/stgov"
	"github.com/withtally/stGOV-sub000/test/datagen"
)

type TestStruct struct {
	Field1 uint64
	Field2 *big.Int
	Addr1  stgov.Address
	Bytes1 stgov.Bytes32
}

// newTestContext returns a fresh Context with in-memory DB.
func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(stgov.Address{1}, state.New(db))
}

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint256(ctx, Slot("total"))

	value, err := u.Get()
	assert.NoError(t, err)
	assert.Equal(t, 0, value.Sign())

	assert.NoError(t, u.Set(big.NewInt(1000)))
	assert.NoError(t, u.Add(big.NewInt(500)))
	assert.NoError(t, u.Sub(big.NewInt(200)))

	value, err = u.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1300).String(), value.String())

	assert.ErrorIs(t, u.Sub(big.NewInt(1301)), errNegative)
	assert.ErrorIs(t, u.Add(stgov.MaxUint256), errOverflow)

	// failed updates leave the slot untouched
	value, _ = u.Get()
	assert.Equal(t, big.NewInt(1300).String(), value.String())

	assert.NoError(t, u.Set(stgov.MaxUint256))
	value, _ = u.Get()
	assert.Equal(t, stgov.MaxUint256.String(), value.String())
}

func TestAddressAndBool(t *testing.T) {
	ctx := newTestContext(t)
	a := NewAddress(ctx, Slot("owner"))
	b := NewBool(ctx, Slot("flag"))

	addr := datagen.RandAddress()
	a.Set(addr)
	got, err := a.Get()
	assert.NoError(t, err)
	assert.Equal(t, addr, got)

	v, err := b.Get()
	assert.NoError(t, err)
	assert.False(t, v)
	b.Set(true)
	v, _ = b.Get()
	assert.True(t, v)
	b.Set(false)
	v, _ = b.Get()
	assert.False(t, v)
}

func TestMapping_StructPointer(t *testing.T) {
	ctx := newTestContext(t)
	mapping := NewMapping[stgov.Bytes32, *TestStruct](ctx, Slot("structs"))
	key := datagen.RandomHash()

	t.Run("absent key yields an allocated zero value", func(t *testing.T) {
		v, err := mapping.Get(key)
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, uint64(0), v.Field1)

		ok, err := mapping.Exists(key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	value := &TestStruct{
		Field1: 100,
		Field2: big.NewInt(200),
		Addr1:  datagen.RandAddress(),
		Bytes1: datagen.RandomHash(),
	}

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, mapping.Set(key, value))
		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Equal(t, value, got)

		ok, _ := mapping.Exists(key)
		assert.True(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		mapping.Delete(key)
		ok, _ := mapping.Exists(key)
		assert.False(t, ok)
	})
}

func TestMapping_ScalarValue(t *testing.T) {
	ctx := newTestContext(t)
	mapping := NewMapping[stgov.DepositID, uint64](ctx, Slot("ids"))

	require.NoError(t, mapping.Set(stgov.DepositID(1), 42))
	v, err := mapping.Get(stgov.DepositID(1))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)

	v, err = mapping.Get(stgov.DepositID(2))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	// distinct positions do not collide
	other := NewMapping[stgov.DepositID, uint64](ctx, Slot("other"))
	v, _ = other.Get(stgov.DepositID(1))
	assert.Equal(t, uint64(0), v)
}

func TestRaw(t *testing.T) {
	ctx := newTestContext(t)
	r := NewRaw[[]stgov.Address](ctx, Slot("list"))

	got, err := r.Get()
	require.NoError(t, err)
	assert.Empty(t, got)

	list := []stgov.Address{datagen.RandAddress(), datagen.RandAddress()}
	require.NoError(t, r.Set(list))
	got, err = r.Get()
	require.NoError(t, err)
	assert.Equal(t, list, got)
}
