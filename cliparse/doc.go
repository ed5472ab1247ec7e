// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles server configuration from CLI flags and environment
variables, with CLI taking precedence. A .env file is loaded when present
(godotenv), so local development needs no exported variables.

	-p / PORT            server port (default 8642)
	-d / DATABASE_URL    database connection string (required)
	-t / DATABASE_TYPE   "postgres" (default) or "sqlite"
*/
package cliparse
