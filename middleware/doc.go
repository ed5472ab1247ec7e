// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers: request logging,
CORS, JSON encoding/decoding, and client IP extraction.

WithLogging wraps each route with slog start/completion records. ErrorResponse
and DetailResponse write the two 4xx body shapes the API uses ({"error": ...}
for rejections with a user-facing reason, {"detail": ...} for not-found and
permission failures).

GetClientIP prefers the first X-Forwarded-For entry, then X-Real-IP, then
RemoteAddr with the port stripped. The result feeds the IP identity channel
for duplicate-vote detection.
*/
package middleware
