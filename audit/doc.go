// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package audit records vote attempts asynchronously.

The attempt log is the only forensic tool the system has, since voters carry
no authenticated identity. Every attempt, accepted or rejected, produces one
entry. The failure policy is strict in one direction: a log write failure
must never fail or delay the vote request, so entries flow through a
buffered channel to a single writer goroutine and overflow drops entries
rather than blocking.
*/
package audit
