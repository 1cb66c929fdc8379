package symtab

import (
	"github.com/effect-lang/effc/internal/annotations"
	"github.com/effect-lang/effc/internal/names"
)

// ConstructorBlockSym is the term-universe (block) facet of a record
// constructor — calling it builds a value of the corresponding DataSym /
// ConstructorSym type. See symbol.go's ConstructorSym doc for why this is
// a distinct symbol rather than one symbol wearing both hats.
type ConstructorBlockSym struct {
	base
	Fields []string
}

func (*ConstructorBlockSym) isTermSymbol()  {}
func (*ConstructorBlockSym) isBlockSymbol() {}

// constructorOf links a ConstructorBlockSym to its ConstructorSym type
// facet; typeOf is its inverse. Both are owned by the annotations store
// (spec §3 "Ownership": cross-references are back-references managed only
// by the annotations store, never by the symbol itself), not by either
// symbol struct.
var constructorOf = annotations.Named[*ConstructorBlockSym, *ConstructorSym]("ConstructorOf")
var typeOf = annotations.Named[*ConstructorSym, *ConstructorBlockSym]("TypeOf")

// LinkConstructor records the cross-link between a record's type facet and
// its constructor (term) facet.
func LinkConstructor(store *annotations.Store, typeFacet *ConstructorSym, termFacet *ConstructorBlockSym) {
	annotations.Annotate(store, constructorOf, termFacet, typeFacet)
	annotations.Annotate(store, typeOf, typeFacet, termFacet)
}

// ConstructorOf returns the type facet of a constructor's block symbol.
func ConstructorOf(store *annotations.Store, termFacet *ConstructorBlockSym) (*ConstructorSym, bool) {
	return annotations.Get(store, constructorOf, termFacet)
}

// TypeOf returns the constructor (term) facet of a record's type symbol.
func TypeOf(store *annotations.Store, typeFacet *ConstructorSym) (*ConstructorBlockSym, bool) {
	return annotations.Get(store, typeOf, typeFacet)
}

// NewRecord builds the cross-linked (type, constructor) symbol pair for a
// `type Name(fields...)` record declaration and links them in store.
func NewRecord(store *annotations.Store, name string, fields []string) (*ConstructorSym, *ConstructorBlockSym) {
	typeFacet := &ConstructorSym{base: base{name: names.New(name)}, Fields: fields}
	termFacet := &ConstructorBlockSym{base: base{name: names.New(name)}, Fields: fields}
	LinkConstructor(store, typeFacet, termFacet)
	return typeFacet, termFacet
}
