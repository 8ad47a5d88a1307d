// Copyright (c) 2025 KKTC Anket contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reputation classifies client IPs as anonymizing infrastructure.

The IPAPI checker queries an ip-api.com style service for the proxy and
hosting flags of an address, caching answers in a bounded LRU. The check is
strictly advisory and fails open: if the service is unreachable, times out,
or answers with an error, the IP is treated as not anonymizing rather than
blocking legitimate voters during an external outage.

Static provides a fixed answer for disabled deployments and tests:

	checker := reputation.Static{} // never anonymizing
*/
package reputation
