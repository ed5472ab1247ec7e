// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the thin authentication glue around the polling core:
bcrypt credential hashing, opaque API tokens, and anonymous session keys.

# Credentials

Passwords are stored as bcrypt hashes (HashPassword / CheckPassword). Raw
passwords never touch the database.

# API Tokens

Login issues a random uuid token persisted in auth_token. Authenticated
endpoints resolve the caller with UserFromRequest, which accepts

	Authorization: Token <t>
	Authorization: Bearer <t>

# Session Keys

NewSessionKey mints the cookie value used to track anonymous voters. The key
itself carries no authority; it is one of the three duplicate-vote identity
channels.
*/
package auth
