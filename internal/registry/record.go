package registry

// Record is one persisted identifier mapping. Immutable once written.
type Record struct {
	Category    string `json:"category"`
	DomainKey   string `json:"domainKey"`
	UID         string `json:"uid"`
	CreatedAtMs int64  `json:"createdAtMs"`
}

// Stamp is one persisted first-write-wins auxiliary value. Immutable once
// written.
type Stamp struct {
	Category    string `json:"category"`
	DomainKey   string `json:"domainKey"`
	Value       string `json:"value"`
	CreatedAtMs int64  `json:"createdAtMs"`
}
