// Package ir provides the canonical intermediate representation for compiled
// Journeys.
//
// This package contains type definitions and pure value-level helpers only.
// All other internal packages import ir; ir imports nothing internal, so it
// remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Primitive is a sealed sum (navigation/wait, interaction, assertion,
//     terminal); adding a new primitive is additive, never invasive, because
//     every consumer of Primitive already exhaustively switches over it.
//   - All JSON tags use snake_case to match the on-disk journey/catalog/LLKB
//     file formats.
//   - IR values produced by the normalizer are immutable once built; mutation
//     happens only inside the healing loop, and only on rendered source code,
//     never on the IR itself.
package ir
