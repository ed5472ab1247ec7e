// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types shared across
the OpenPoll API.

# Entity Hierarchy

	User -> Poll -> Question -> Choice -> Vote

A Poll belongs to the User who created it and carries an expiry timestamp.
Questions belong to a Poll, Choices to a Question. A Vote references both its
Choice and (denormalized) its Question so the per-question uniqueness
constraints can live on a single row.

# Identity Channels

A Vote records up to three identity markers: the authenticated user, the
client IP address, and the session key. Each is optional; each carries its own
per-question uniqueness constraint in the schema.

# JSON Hygiene

Voter-identifying fields (password hashes, IP addresses, session keys) are
tagged `json:"-"` and never leave the server.
*/
package models
