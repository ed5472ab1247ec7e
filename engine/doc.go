// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine implements the vote admission and tallying core.

# Admission

Check runs the ordered admission rules for a vote attempt:

 1. the question's poll exists and has not expired
 2. the choice exists and belongs to the target question
 3. no prior vote on the question by the same account
 4. no prior vote on the question from the same IP
 5. no prior vote on the question under the same session key

The first failing rule determines the rejection, so callers always see a
deterministic reason. Check is read-only; it exists to reject politely before
a write is attempted.

# Recording

Record re-runs admission and inserts the vote inside a single transaction.
The duplicate guarantees do not come from the pre-check: they come from the
vote table's unique constraints, so of two concurrent submissions with the
same identity exactly one commits and the loser's constraint violation is
translated into the rejection it would have received had it arrived second.

# Session Fast Path

SessionVotes is an in-process flag set keyed by (session key, question).
Record marks it after commit; Check consults it to reject a flagged session
without touching the store. It is advisory only - the store constraint
remains the source of truth.

# Tallying

Tally counts committed votes per choice for every question of a poll inside
one read transaction. Counts are ordered by votes descending with choice id
ascending as the tie-break, and the winner is the top entry. A question with
no choices has no winner; a choice with zero votes can still win.

# Identity

ResolveIdentity builds the three-channel identity descriptor for a request:
account id from the Authorization token, client IP from forwarding headers,
and the session key from a cookie that is minted on first contact.
*/
package engine
