// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package fingerprint implements the device-identity token format.

A fingerprint approximates "this device + browser" well enough to survive
page reloads without being a cross-site tracking identifier. Two token
shapes exist:

  - primary: fp_<hex>, derived from the full browser signal set (Generate)
  - fallback: fallback_<hex>_<hex>, derived from the reduced signal set
    available in private-browsing contexts (GenerateFallback)

Validate is the server-side gate: length 10-64 and a restricted character
set. It accepts both shapes plus legacy opaque tokens.

Fallback tokens are the signature of incognito retries and are policed more
strictly by the decision engine (see the engine package). Base recovers the
stable portion of legacy fallback tokens that carried volatile suffixes.
*/
package fingerprint
