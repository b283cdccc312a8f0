// SPDX-License-Identifier: MIT

// Package report provides ga.Reporter building blocks: adapters for plain
// functions, fan-out, structured logging, an in-memory recorder and a
// rate-limited wrapper for expensive sinks.
//
// All reporters run on the goroutine that calls ga.Scheduler.Tick and must
// not block for long; sinks that do I/O (network, disk) should be wrapped
// with Throttle or buffer internally.
package report
