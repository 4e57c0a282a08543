// Package domain contains the core entities of the application: decks, the
// cards they hold, the append-only study log and the application state blob
// the host persists. It is independent of any storage or delivery mechanism.
package domain
