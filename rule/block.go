package rule

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"hash/fnv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/restyle/style"
)

// Declaration is a single property declaration within a block.
type Declaration struct {
	Key       string
	Value     style.Property
	Important bool
}

// Block is an ordered, immutable list of property declarations, the unit
// the rule tree stores at each level. Blocks are value-comparable:
// two blocks with equal declarations in equal order are interchangeable,
// and the store will canonicalize them onto the same node.
type Block struct {
	decls []Declaration
	hash  uint64
}

// NewBlock creates a block from declarations. The declaration order is
// preserved; it is the source order within one CSS rule.
func NewBlock(decls []Declaration) *Block {
	b := &Block{decls: decls}
	b.hash = hashDecls(decls)
	return b
}

// BlockOfProperties is a convenience constructor for blocks without
// important declarations.
func BlockOfProperties(kvs []style.KeyValue) *Block {
	decls := make([]Declaration, len(kvs))
	for i, kv := range kvs {
		decls[i] = Declaration{Key: kv.Key, Value: kv.Value}
	}
	return NewBlock(decls)
}

// FromDouceur wraps a parsed douceur declaration list into a block.
func FromDouceur(decls []*css.Declaration) *Block {
	ds := make([]Declaration, 0, len(decls))
	for _, d := range decls {
		if d == nil {
			continue
		}
		ds = append(ds, Declaration{
			Key:       strings.TrimSpace(d.Property),
			Value:     style.Property(strings.ToLower(strings.TrimSpace(d.Value))),
			Important: d.Important,
		})
	}
	return NewBlock(ds)
}

func hashDecls(decls []Declaration) uint64 {
	h := fnv.New64a()
	for _, d := range decls {
		h.Write([]byte(d.Key))
		h.Write([]byte{':'})
		h.Write([]byte(d.Value))
		if d.Important {
			h.Write([]byte{'!'})
		}
		h.Write([]byte{';'})
	}
	return h.Sum64()
}

// Declarations returns the block's declarations in source order.
func (b *Block) Declarations() []Declaration {
	if b == nil {
		return nil
	}
	return b.decls
}

// IsEmpty checks wether the block holds any declarations at all.
func (b *Block) IsEmpty() bool {
	return b == nil || len(b.decls) == 0
}

// HasImportant checks wether any declaration is flagged `!important`.
func (b *Block) HasImportant() bool {
	if b == nil {
		return false
	}
	for _, d := range b.decls {
		if d.Important {
			return true
		}
	}
	return false
}

// Split partitions a block into its normal and its important
// declarations. Either result may be nil.
func (b *Block) Split() (normal *Block, important *Block) {
	if b == nil {
		return nil, nil
	}
	var ns, is []Declaration
	for _, d := range b.decls {
		if d.Important {
			is = append(is, d)
		} else {
			ns = append(ns, d)
		}
	}
	if len(ns) > 0 {
		normal = NewBlock(ns)
	}
	if len(is) > 0 {
		important = NewBlock(is)
	}
	return
}

// Hash returns the content hash of the block.
func (b *Block) Hash() uint64 {
	if b == nil {
		return 0
	}
	return b.hash
}

// Equal compares two blocks by content.
func (b *Block) Equal(other *Block) bool {
	if b == other {
		return true
	}
	if b == nil || other == nil || b.hash != other.hash || len(b.decls) != len(other.decls) {
		return false
	}
	for i, d := range b.decls {
		if other.decls[i] != d {
			return false
		}
	}
	return true
}
