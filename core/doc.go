// Package core contains the canonical notification domain: webhook
// configuration, the typed GitHub event union, recipient and template shapes,
// the error taxonomy, and configuration loading. Lower-level adapters depend on
// this package; core must not depend on transport or storage adapters.
package core
