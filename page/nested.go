package page

import "github.com/coldex-io/coldex/errs"

// Nested tracks one level of a shredded nested type while a page's
// repetition/definition levels are replayed back into rows. Each push
// corresponds to one (rep, def) pair that belongs to this depth.
//
// IsNullable governs this level's own validity discriminant (the def value
// at which THIS level is null). Gates reports whether this level's
// cardinality legitimately varies row to row: a List can be null or empty,
// so its absence must stop descendants from being pushed at all; a Struct
// is always exactly one-per-parent-row, so a null struct still reserves a
// slot in every descendant down to the leaf. Gates()==false keeps that
// slot reserved regardless of IsNullable(). Delta is how many definition
// levels this level consumes: a List needs 2 when nullable (null, empty)
// and 1 when required (just empty-vs-nonempty); a Struct or a scalar leaf
// needs 1 when nullable (null vs present) and 0 when required (no state
// to encode at all).
type Nested interface {
	Push(length int64, isValid bool)
	IsNullable() bool
	Gates() bool
	Delta() uint32
	Len() int
	NumValues() int
}

// NestedPrimitive is the leaf level: it only counts values, since a
// primitive layer's own decoded values come from the Decoder, not from
// NestedState.
type NestedPrimitive struct {
	nullable bool
	length   int
}

func NewNestedPrimitive(nullable bool) *NestedPrimitive { return &NestedPrimitive{nullable: nullable} }

func (n *NestedPrimitive) Push(int64, bool) { n.length++ }
func (n *NestedPrimitive) IsNullable() bool { return n.nullable }
func (n *NestedPrimitive) Gates() bool      { return false }
func (n *NestedPrimitive) Len() int         { return n.length }
func (n *NestedPrimitive) NumValues() int   { return n.length }

func (n *NestedPrimitive) Delta() uint32 {
	if n.nullable {
		return 1
	}

	return 0
}

// NestedOptional is a nullable List level: each push records the child's
// cumulative offset plus whether this row itself is present.
type NestedOptional struct {
	Offsets  []int64
	Validity []bool
}

func NewNestedOptional(capacity int) *NestedOptional {
	return &NestedOptional{Offsets: make([]int64, 0, capacity+1), Validity: make([]bool, 0, capacity)}
}

func (n *NestedOptional) Push(length int64, isValid bool) {
	n.Offsets = append(n.Offsets, length)
	n.Validity = append(n.Validity, isValid)
}

func (n *NestedOptional) IsNullable() bool { return true }
func (n *NestedOptional) Gates() bool      { return true }
func (n *NestedOptional) Delta() uint32    { return 2 }
func (n *NestedOptional) Len() int         { return len(n.Offsets) }

func (n *NestedOptional) NumValues() int {
	if len(n.Offsets) == 0 {
		return 0
	}

	return int(n.Offsets[len(n.Offsets)-1])
}

// NestedValid is a non-nullable List level.
type NestedValid struct {
	Offsets []int64
}

func NewNestedValid(capacity int) *NestedValid {
	return &NestedValid{Offsets: make([]int64, 0, capacity+1)}
}

func (n *NestedValid) Push(length int64, _ bool) { n.Offsets = append(n.Offsets, length) }
func (n *NestedValid) IsNullable() bool          { return false }
func (n *NestedValid) Gates() bool               { return true }
func (n *NestedValid) Delta() uint32             { return 1 }
func (n *NestedValid) Len() int                  { return len(n.Offsets) }

func (n *NestedValid) NumValues() int {
	if len(n.Offsets) == 0 {
		return 0
	}

	return int(n.Offsets[len(n.Offsets)-1])
}

// NestedStructValid is a non-nullable Struct level: it only counts rows.
type NestedStructValid struct {
	length int
}

func NewNestedStructValid() *NestedStructValid { return &NestedStructValid{} }

func (n *NestedStructValid) Push(int64, bool) { n.length++ }
func (n *NestedStructValid) IsNullable() bool { return false }
func (n *NestedStructValid) Gates() bool      { return false }
func (n *NestedStructValid) Delta() uint32    { return 0 }
func (n *NestedStructValid) Len() int         { return n.length }
func (n *NestedStructValid) NumValues() int   { return n.length }

// NestedStruct carries a nullable struct's validity bitmap. Gates()
// reports false: a struct row is always exactly one-per-parent-row, so a
// null struct still reserves a slot in every descendant level rather than
// suppressing it the way a null/empty List does.
type NestedStruct struct {
	Validity []bool
}

func NewNestedStruct(capacity int) *NestedStruct {
	return &NestedStruct{Validity: make([]bool, 0, capacity)}
}

func (n *NestedStruct) Push(_ int64, isValid bool) { n.Validity = append(n.Validity, isValid) }
func (n *NestedStruct) IsNullable() bool           { return true }
func (n *NestedStruct) Gates() bool                { return false }
func (n *NestedStruct) Delta() uint32              { return 1 }
func (n *NestedStruct) Len() int                   { return len(n.Validity) }
func (n *NestedStruct) NumValues() int             { return len(n.Validity) }

// InitNestedKind tags the shape of one level of a shredding descriptor.
type InitNestedKind int

const (
	InitPrimitive InitNestedKind = iota
	InitList
	InitStruct
)

// InitNested recursively describes a column's nesting shape: a chain of
// List/Struct wrappers terminating in a Primitive leaf.
type InitNested struct {
	Kind     InitNestedKind
	Inner    *InitNested
	Nullable bool
}

func NewInitPrimitive(nullable bool) *InitNested {
	return &InitNested{Kind: InitPrimitive, Nullable: nullable}
}

func NewInitList(inner *InitNested, nullable bool) *InitNested {
	return &InitNested{Kind: InitList, Inner: inner, Nullable: nullable}
}

func NewInitStruct(inner *InitNested, nullable bool) *InitNested {
	return &InitNested{Kind: InitStruct, Inner: inner, Nullable: nullable}
}

// NestedState is the stack of Nested levels produced from one InitNested
// descriptor, outermost (row count) first and innermost (leaf) last.
type NestedState struct {
	Items []Nested
}

func InitNestedState(init *InitNested, capacity int) *NestedState {
	var items []Nested
	appendNestedLevels(init, capacity, &items)

	return &NestedState{Items: items}
}

func appendNestedLevels(init *InitNested, capacity int, out *[]Nested) {
	switch init.Kind {
	case InitPrimitive:
		*out = append(*out, NewNestedPrimitive(init.Nullable))
	case InitList:
		if init.Nullable {
			*out = append(*out, NewNestedOptional(capacity))
		} else {
			*out = append(*out, NewNestedValid(capacity))
		}

		appendNestedLevels(init.Inner, capacity, out)
	case InitStruct:
		if init.Nullable {
			*out = append(*out, NewNestedStruct(capacity))
		} else {
			*out = append(*out, NewNestedStructValid())
		}

		appendNestedLevels(init.Inner, capacity, out)
	}
}

// Len is the outermost level's row count.
func (s *NestedState) Len() int { return s.Items[0].Len() }

// NumValues is the leaf level's value count.
func (s *NestedState) NumValues() int { return s.Items[len(s.Items)-1].NumValues() }

type levelPair struct {
	rep uint32
	def uint32
}

// nestedPage zips a page's repetition and definition level streams,
// supporting a one-pair lookahead so ExtendOffsets can stop precisely at a
// row boundary.
type nestedPage struct {
	reps *LevelDecoder
	defs *LevelDecoder

	peeked   levelPair
	peekedOK bool
}

func newNestedPage(p *DataPage) *nestedPage {
	return &nestedPage{
		reps: NewLevelDecoder(p.RepLevels, LevelBitWidth(p.MaxRepLevel), p.NumValues),
		defs: NewLevelDecoder(p.DefLevels, LevelBitWidth(p.MaxDefLevel), p.NumValues),
	}
}

func (p *nestedPage) pull() (levelPair, bool, error) {
	rep, ok, err := p.reps.Next()
	if err != nil || !ok {
		return levelPair{}, false, err
	}

	def, ok, err := p.defs.Next()
	if err != nil {
		return levelPair{}, false, err
	}

	if !ok {
		return levelPair{}, false, errs.CorruptStream("definition levels shorter than repetition levels")
	}

	return levelPair{rep: rep, def: def}, true, nil
}

func (p *nestedPage) next() (levelPair, bool, error) {
	if p.peekedOK {
		pair := p.peeked
		p.peekedOK = false

		return pair, true, nil
	}

	return p.pull()
}

// hasMore reports whether the stream has any pair left, counting a pending
// lookahead pair as available without consuming anything further.
func (p *nestedPage) hasMore() bool {
	return p.peekedOK || p.reps.produced < p.reps.count
}

func (p *nestedPage) peekRep() (uint32, bool, error) {
	if p.peekedOK {
		return p.peeked.rep, true, nil
	}

	if !p.hasMore() {
		return 0, false, nil
	}

	pair, ok, err := p.pull()
	if err != nil || !ok {
		return 0, ok, err
	}

	p.peeked = pair
	p.peekedOK = true

	return pair.rep, true, nil
}

// ExtendOffsets replays one page's (rep, def) levels into nested row
// shapes, completing any in-progress NestedState from a prior page and
// appending as many additional chunkSize-sized ones as the page covers.
// This is the Dremel "cum_sum" record-shredding algorithm.
func ExtendOffsets(p *DataPage, init *InitNested, items *[]*NestedState, chunkSize int) error {
	pg := newNestedPage(p)

	var state *NestedState

	if n := len(*items); n > 0 {
		state = (*items)[n-1]
		*items = (*items)[:n-1]
	} else {
		state = InitNestedState(init, chunkSize)
	}

	remaining := chunkSize - state.Len()
	if err := extendOffsets2(pg, state, remaining); err != nil {
		return err
	}

	*items = append(*items, state)

	for pg.hasMore() {
		state = InitNestedState(init, chunkSize)
		if err := extendOffsets2(pg, state, chunkSize); err != nil {
			return err
		}

		*items = append(*items, state)
	}

	return nil
}

// extendOffsets2 is the per-depth cum_sum loop: for each
// (rep, def) pair, every depth whose own rep boundary has been crossed
// (depth >= rep) and whose definition level clears that depth's existence
// gate (def >= gateSum[depth]) receives one push, carrying the next depth's
// current length as its offset and a validity flag derived from whether def
// exactly matches that depth's own discriminant (def == cumSum[depth] means
// null, only meaningful when the depth is nullable).
//
// gateSum and cumSum diverge for Struct-kind levels (Gates() == false):
// a null Struct still reserves one slot in every descendant all the way to
// the leaf, since a Struct's cardinality never varies with its own
// nullity the way a List's does, so it must not block deeper pushes even
// though it does contribute its own null/present discriminant.
func extendOffsets2(pg *nestedPage, state *NestedState, additional int) error {
	items := state.Items
	n := len(items)

	valuesCount := make([]int64, n)
	for depth := 1; depth < n; depth++ {
		valuesCount[depth-1] = int64(items[depth].Len())
	}

	valuesCount[n-1] = int64(items[n-1].Len())

	cumSum := make([]uint32, n+1)
	gateSum := make([]uint32, n+1)

	for i, nest := range items {
		delta := nest.Delta()

		cumSum[i+1] = cumSum[i] + delta

		gateSum[i+1] = gateSum[i]
		if nest.Gates() {
			gateSum[i+1] += delta
		}
	}

	rows := 0

	for {
		pair, ok, err := pg.next()
		if err != nil {
			return err
		}

		if !ok {
			break
		}

		if pair.rep == 0 {
			rows++
		}

		for depth, nest := range items {
			if uint32(depth) >= pair.rep && pair.def >= gateSum[depth] {
				isValid := nest.IsNullable() && pair.def != cumSum[depth]
				nest.Push(valuesCount[depth], isValid)
			}
		}

		for depth := 1; depth < n; depth++ {
			valuesCount[depth-1] = int64(items[depth].Len())
		}

		valuesCount[n-1] = int64(items[n-1].Len())

		nextRep, hasNext, err := pg.peekRep()
		if err != nil {
			return err
		}

		if !hasNext {
			nextRep = 0
		}

		if nextRep == 0 && rows == additional+1 {
			break
		}
	}

	return nil
}
