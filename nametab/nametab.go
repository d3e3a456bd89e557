// Package nametab interns actor display names into small integer
// references, the way ion.Symtab interns strings into ion symbols. It
// backs the "name reference (u16)" payload of the actor_join wire
// message: the simulation assigns a reference when an actor is added,
// and the router resolves one back to a name when a join message
// arrives out of band.
package nametab

import (
	"github.com/dchest/siphash"
	"golang.org/x/exp/maps"
)

// Ref is a small integer reference to an interned name, as carried on
// the wire by the actor_join message.
type Ref uint16

// seed holds no predefined names; unlike ion's system symbol table this
// tab starts empty, but Table.init mirrors Symtab.init's maps.Clone
// pattern so a future predefined-name set only needs to populate seed.
var seed = map[string]Ref{}

// Table interns actor display names into Refs and back. The zero value
// is ready to use.
type Table struct {
	interned []string
	byName   map[string]Ref
	hashKey0 uint64
	hashKey1 uint64
}

func (t *Table) init() {
	t.byName = maps.Clone(seed)
	t.interned = make([]string, len(seed))
	for name, ref := range seed {
		t.interned[ref] = name
	}
}

// Intern returns the Ref for name, allocating a new one if name hasn't
// been seen before. Interning the same name twice returns the same Ref.
func (t *Table) Intern(name string) Ref {
	if t.byName == nil {
		t.init()
	}
	if ref, ok := t.byName[name]; ok {
		return ref
	}
	ref := Ref(len(t.interned))
	t.interned = append(t.interned, name)
	t.byName[name] = ref
	return ref
}

// Resolve returns the name interned under ref, or ok=false if ref was
// never issued by this table.
func (t *Table) Resolve(ref Ref) (string, bool) {
	if int(ref) >= len(t.interned) {
		return "", false
	}
	return t.interned[ref], true
}

// hash64 siphashes name with the table's per-instance key. It isn't used
// for Intern/Resolve (a map already gives O(1) lookup there); it exists
// for callers that want to correlate a name across a MessageRouter's
// drop logs without holding onto the string itself, grounded on the same
// siphash.Hash128 use vm/radix64_test.go makes for string-keyed hashing.
func (t *Table) hash64(name string) uint64 {
	lo, _ := siphash.Hash128(t.hashKey0, t.hashKey1, []byte(name))
	return lo
}

// LogKey returns a short, stable correlation key for name suitable for a
// log line, without exposing the interning table's internal Ref space.
func (t *Table) LogKey(name string) uint64 {
	if t.byName == nil {
		t.init()
	}
	return t.hash64(name)
}
