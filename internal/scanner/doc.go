// Package scanner implements the webint probe-and-fingerprint pipeline.
//
// Architecture overview:
//
//   - Probes (FetchProber, TLSProber, DNSProber) each perform one category of
//     network I/O against the target and return an explicit outcome value.
//     Every probe is independently fallible: a failure degrades that category
//     to its "Unknown" defaults and never disturbs another category.
//   - Pure analyzers (Fingerprint, AnalyzeHeaders) consume a single shared
//     FetchResult. They never touch the network, which keeps them trivially
//     testable with canned inputs.
//   - The signature tables in catalog.go are plain data (label + pattern in
//     evaluation order) consumed by a generic matcher, so adding a detector
//     is a one-line table change.
//   - Scanner joins the concurrent probe outcomes into a fixed-shape Report:
//     six sections whose fields fall back to documented sentinels rather than
//     disappearing when a probe fails.
//
// This layout keeps all network and detection logic internal while cmd/ and
// internal/api only construct a Scanner and serialize the Report it returns.
package scanner
