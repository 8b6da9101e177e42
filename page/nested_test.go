package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeLevelsRLE hybrid-RLE encodes levels as one single-element RLE run
// per value by delegating to encodeRLERuns in decoder_test.go.
func encodeLevelsRLE(levels []uint32, bitWidth int) []byte {
	return encodeRLERuns(levels, bitWidth)
}

func TestExtendOffsets_NullableListOfRequiredInts(t *testing.T) {
	// list<i32> (required items), the list itself nullable.
	// Rows: null, [], [7, 8].
	reps := []uint32{0, 0, 0, 1}
	defs := []uint32{0, 1, 2, 2}

	p := &DataPage{
		NumValues:   4,
		MaxRepLevel: 1,
		MaxDefLevel: 2,
		RepLevels:   encodeLevelsRLE(reps, LevelBitWidth(1)),
		DefLevels:   encodeLevelsRLE(defs, LevelBitWidth(2)),
	}

	init := NewInitList(NewInitPrimitive(false), true)

	var states []*NestedState
	require.NoError(t, ExtendOffsets(p, init, &states, 10))
	require.Len(t, states, 1)

	items := states[0].Items
	require.Len(t, items, 2)

	list, ok := items[0].(*NestedOptional)
	require.True(t, ok)
	assert.Equal(t, []bool{false, true, true}, list.Validity)
	// Offsets record each row's start position in the leaf array: row 0 is
	// null (0 items), row 1 is an empty list (0 items), row 2 starts where
	// row 1 left off and consumes the remaining 2 leaf values.
	assert.Equal(t, []int64{0, 0, 0}, list.Offsets)

	leaf, ok := items[1].(*NestedPrimitive)
	require.True(t, ok)
	assert.Equal(t, 2, leaf.NumValues())
}

func TestExtendOffsets_ListOfListTwoLevels(t *testing.T) {
	// list<list<i32>> (outer nullable, inner and leaf required).
	// Row 0: [[1, 2], [3]] — one outer value with two inner entries, the
	// first holding two leaf values and the second holding one.
	// Row 1: null (the whole outer value is absent).
	//
	// Stripe, read leaf by leaf:
	//   (rep=0, def=3): new row, new inner entry, leaf value 1
	//   (rep=2, def=3): same inner entry, leaf value 2
	//   (rep=1, def=3): new inner entry (still row 0), leaf value 3
	//   (rep=0, def=0): new row, outer itself null
	//
	// rep=2 gates out both the outer and inner pushes (same inner entry
	// continues); rep=1 gates out only the outer push (still the same
	// row, one list level up starts a new entry); def=0 on the last pair
	// clears the outer gate (gateSum[0]==0, so it still pushes) but fails
	// its own validity discriminant, and also falls below the inner gate
	// (gateSum[1]==2) so neither inner nor leaf receive a push.
	reps := []uint32{0, 2, 1, 0}
	defs := []uint32{3, 3, 3, 0}

	p := &DataPage{
		NumValues:   4,
		MaxRepLevel: 2,
		MaxDefLevel: 3,
		RepLevels:   encodeLevelsRLE(reps, LevelBitWidth(2)),
		DefLevels:   encodeLevelsRLE(defs, LevelBitWidth(3)),
	}

	init := NewInitList(NewInitList(NewInitPrimitive(false), false), true)

	var states []*NestedState
	require.NoError(t, ExtendOffsets(p, init, &states, 10))
	require.Len(t, states, 1)

	items := states[0].Items
	require.Len(t, items, 3)

	outer, ok := items[0].(*NestedOptional)
	require.True(t, ok)
	assert.Equal(t, []int64{0, 2}, outer.Offsets)
	assert.Equal(t, []bool{true, false}, outer.Validity)

	inner, ok := items[1].(*NestedValid)
	require.True(t, ok)
	assert.Equal(t, []int64{0, 2}, inner.Offsets)

	leaf, ok := items[2].(*NestedPrimitive)
	require.True(t, ok)
	assert.Equal(t, 3, leaf.NumValues())
}

func TestExtendOffsets_NullableStructOfNullableInt(t *testing.T) {
	// struct<x:i32?>, the struct itself nullable.
	// Rows: null, struct{x:null}, struct{x:42}.
	reps := []uint32{0, 0, 0}
	defs := []uint32{0, 1, 2}

	p := &DataPage{
		NumValues:   3,
		MaxRepLevel: 0,
		MaxDefLevel: 2,
		RepLevels:   encodeLevelsRLE(reps, LevelBitWidth(0)),
		DefLevels:   encodeLevelsRLE(defs, LevelBitWidth(2)),
	}

	init := NewInitStruct(NewInitPrimitive(true), true)

	var states []*NestedState
	require.NoError(t, ExtendOffsets(p, init, &states, 10))
	require.Len(t, states, 1)

	items := states[0].Items
	require.Len(t, items, 2)

	strct, ok := items[0].(*NestedStruct)
	require.True(t, ok)
	assert.Equal(t, []bool{false, true, true}, strct.Validity)

	leaf, ok := items[1].(*NestedPrimitive)
	require.True(t, ok)
	assert.Equal(t, 3, leaf.NumValues())
}
