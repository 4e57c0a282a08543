// Package events provides an in-process publish/subscribe mechanism.
//
// Services emit events without knowing which handlers consume them. The
// study service emits a review.recorded event after every persisted answer;
// the statistics cache subscribes to it to refresh retention and streak.
//
// The primary components are:
//   - Event: an envelope with a type and a JSON payload
//   - EventHandler: implemented by consumers
//   - EventEmitter: implemented by the dispatcher
package events
