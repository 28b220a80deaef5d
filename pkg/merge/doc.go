// Package merge implements deterministic merge resolution between a render
// node's local attribute bundle and the bundle forwarded to it from its
// enclosing call site.
//
// Resolution is pure, synchronous, and total: every conflict has a defined
// winner, so no runtime ambiguity can arise. The precedence model is
// override-then-accumulate:
//
//   - A forwarded full-value attribute overrides the node's own full value
//     and suppresses every local partial contribution (class toggles, style
//     properties) addressing the same attribute name.
//   - Class toggles accumulate as an ordered set: local static tokens first,
//     then active local toggles, then active forwarded toggles, duplicates
//     from later entries dropped.
//   - Style properties and event handlers are keyed overrides; on a key
//     collision the forwarded entry wins ("outer caller wins").
//   - Spread directives union their wrapped bundle in place, as if each
//     directive had been declared at the spread's call site.
//
// Resolve runs once per node per (re)construction. Directives backed by
// reactive sources survive into the snapshot's Dynamic slots so the rebind
// layer can update one leaf entry at a time without re-running the merge.
package merge
