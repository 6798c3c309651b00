// Package timemachine evaluates the historical outcome of an investment in a
// single traded instrument: a lump-sum purchase on a given date, optional
// periodic contributions, and a full liquidation on a later date, computed
// against a daily closing-price series.
//
// The engine is pure: every function is a deterministic computation over
// immutable inputs with no I/O and no state between calls. Price histories
// come from a collaborator such as the moex subpackage; presentation lives in
// the renderer and cmd subpackages.
package timemachine
