/*
Package cliparse parses server configuration from CLI flags with environment
variable fallback.

Every policy threshold of the duplicate-vote engine is configuration, not a
constant: poll close time, burst window and threshold, per-IP vote cap, rate
limit, body size cap, and the reputation service endpoint and timeout. This
keeps the policy tunable and testable independently of the engine logic.

Secrets (ADMIN_KEY) should come from the environment; the CLI flags exist for
development convenience.
*/
package cliparse
