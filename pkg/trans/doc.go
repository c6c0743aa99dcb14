// Package trans implements the translatable-field mechanism: expanding
// one logical field declaration into one concrete field per configured
// language, and resolving reads and writes of the logical name through a
// deterministic language fallback chain.
//
// The mechanism is two-phase. The declaration phase describes a model as
// a TypeDecl: ordered logical fields plus a translate marker. Build then
// produces the physical core.Schema: the marked fields replaced by their
// per-language clones, with a virtual accessor installed under each
// canonical name. Expansion runs exactly once, before any record exists;
// per-record resolution is synchronous in-memory attribute access.
package trans
