// Package client implements the uidreg CLI commands that talk to a running
// server over its HTTP API. The server address comes from the UIDREG_HTTP
// environment variable, defaulting to http://127.0.0.1:8080.
package client
