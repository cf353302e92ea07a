// Package dynamo provides the shared vocabulary of the chemistry lab.
//
// Every demonstration, regardless of what it animates, reports through the
// same small set of types:
//
//   - [Kind]: identifies which simulation family a topic dispatches to
//   - [Outputs]: named numeric values produced by one tick
//   - [Sample]: a tick's outputs stamped with tick index and simulated time
//   - [Event]: a one-shot notification raised during a tick
//
// # Errors
//
// Sentinel errors live here so that callers can match them with
// [errors.Is] without importing the package that raised them. A panic
// recovered from a tick is wrapped in [TickError].
//
// # Thread Safety
//
// Values in this package are plain data. [Outputs] is a map and must be
// cloned with [Outputs.Clone] before being shared across goroutines.
package dynamo
