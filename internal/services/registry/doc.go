// Package registrysvc implements the registry facade consumed by the HTTP
// transport and the CLI. It layers category policy (default category, name
// regex, optional allow-list) and structured logging over the core registry,
// and supports CEL filter expressions on list queries.
//
// Example:
//
//	svc := registrysvc.New(rt)
//	uid, _ := svc.GetOrCreate(ctx, "specimen", "SAMPLE_001")
//	recs, _ := svc.List(ctx, "specimen", `created_at_ms > now_ms - 86400000`)
package registrysvc
