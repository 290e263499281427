// Package uid generates globally unique, collision-resistant identifier
// strings for the registry.
//
// # Formats
//
// The default OIDGenerator renders a random UUID as a UUID-derived OID per
// ISO/IEC 9834-8: "2.25." followed by the UUID interpreted as an unsigned
// 128-bit integer. This is the standard way to mint DICOM UIDs without an
// organizational root and matches the mapping files produced by earlier
// conversion tooling. A value never exceeds 44 characters, inside the DICOM
// 64-character UID limit.
//
// UUIDGenerator emits the canonical RFC 4122 text form instead, for
// deployments that do not need DICOM-shaped identifiers.
//
// Usage:
//
//	gen := uid.NewOIDGenerator("")
//	value, err := gen.NewUID() // "2.25.193847561029384756..."
package uid
