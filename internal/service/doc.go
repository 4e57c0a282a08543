// Package service contains the application use cases. Services orchestrate
// domain objects and the store interfaces from internal/store, applying the
// transactional boundaries an operation needs, and never depend on a
// concrete storage implementation.
//
// DeckService covers deck and card management. The study session use cases
// live in the study subpackage.
package service
