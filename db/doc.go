// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns database connectivity and the relational schema.

# Drivers

Two drivers are supported, selected by DATABASE_TYPE:

  - postgres: github.com/lib/pq (production default)
  - sqlite: modernc.org/sqlite (cgo-free; development and the test suite)

Open applies the sqlite pragmas (foreign_keys, busy_timeout) that cascades and
concurrent writes depend on.

# Schema

CreateSchema installs the dialect-appropriate DDL. The vote table carries
three named unique constraints - (user_id, question_id),
(ip_address, question_id), (session_key, question_id) - which are the
store-level guarantee behind duplicate-vote prevention. Application-level
pre-checks exist only to produce friendly errors before the write.

# Constraint Classification

UniqueViolation normalizes driver-specific unique-violation errors to the
schema's constraint names so the voting engine can translate a lost insert
race into the same rejection a later arrival would have received.
*/
package db
