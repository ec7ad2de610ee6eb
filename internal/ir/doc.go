// Package ir provides the core value types for connective inventories.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the data model the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - A Word is a 4-bit truth vector; world 0 (p∧q) is the most significant bit
//   - Languages are ordered; order is significant for output and for the
//     maximality replay of the implicature engine
//   - Informativeness is an exact rational (math/big.Rat), never a float,
//     until a reporting sink asks for a decimal
//   - Canonical JSON has no floats; rationals serialise as "p/q" strings
//   - All JSON tags use snake_case
package ir
