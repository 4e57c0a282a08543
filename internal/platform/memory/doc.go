// Package memory implements the store interfaces over a single in-memory
// domain.AppState. One Store owns the state; every read and write goes
// through its mutex, and InTx applies a unit of work to a private copy that
// replaces the state only when the work succeeds.
//
// The command line tools load the state from the local SQLite blob, work on
// it through a Store and save Snapshot() back when they are done.
package memory
