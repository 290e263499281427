package registry

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - reg/{category}/u/{domain_key}   identifier record (JSON)
// - reg/{category}/s/{domain_key}   stamp record (JSON)
//
// Categories must not contain '/', which keeps category prefixes
// unambiguous. Domain keys may contain any byte: they are the final key
// segment, so a '/' inside one cannot escape its category prefix.

var (
	regPrefix = []byte("reg/")
	uidSeg    = []byte("/u/")
	stampSeg  = []byte("/s/")
)

// KeyRecord builds the identifier record key for a (category, domain key) pair.
func KeyRecord(category, domainKey string) []byte {
	k := make([]byte, 0, len(regPrefix)+len(category)+len(uidSeg)+len(domainKey))
	k = append(k, regPrefix...)
	k = append(k, category...)
	k = append(k, uidSeg...)
	k = append(k, domainKey...)
	return k
}

// KeyStamp builds the stamp key for a (category, domain key) pair.
func KeyStamp(category, domainKey string) []byte {
	k := make([]byte, 0, len(regPrefix)+len(category)+len(stampSeg)+len(domainKey))
	k = append(k, regPrefix...)
	k = append(k, category...)
	k = append(k, stampSeg...)
	k = append(k, domainKey...)
	return k
}

// PrefixRecords builds the scan prefix covering every identifier record in a
// category.
func PrefixRecords(category string) []byte {
	k := make([]byte, 0, len(regPrefix)+len(category)+len(uidSeg))
	k = append(k, regPrefix...)
	k = append(k, category...)
	k = append(k, uidSeg...)
	return k
}
