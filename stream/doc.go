// Package stream fans notification outcomes out to websocket subscribers.
//
// A Hub owns a single run loop goroutine. Publishing never blocks the caller:
// slow subscribers are dropped and a full broadcast queue discards the
// outcome.
package stream
