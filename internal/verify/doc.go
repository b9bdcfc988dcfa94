// Package verify resolves configuration records against their providers.
//
// Every remote record must name a hook the provider advertises at the pinned
// revision. The verifier fetches each provider repository at its pin, loads
// the provider's hook manifest, and reports records that do not resolve.
package verify
