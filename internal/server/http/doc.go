// Package httpserver exposes the registry over a JSON HTTP API. It is the
// shared surface for conversion workers running outside the server process:
// the embedded store is single-writer, so cross-process callers go through
// this daemon.
//
// Endpoints:
//
//	GET  /v1/healthz
//	POST /v1/uids/get-or-create   {"category","domainKey"}
//	GET  /v1/uids/resolve?category=&domainKey=
//	GET  /v1/uids/list?category=&filter=
//	GET  /v1/uids/stats
//	POST /v1/stamps/get-or-set    {"category","domainKey","value"}
package httpserver
