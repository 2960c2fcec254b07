// Package dataset holds the raw result variants produced by provider adapters
// and the normalizer that turns them into bounded, protocol-safe values.
//
// Provider adapters tag every result explicitly (Tabular, Scalar or Opaque);
// the normalizer dispatches on that tag and never inspects dynamic types.
package dataset
