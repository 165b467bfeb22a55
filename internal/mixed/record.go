package mixed

// Record is one stored entity holding a single mixed field.
//
// ID is opaque and plays no part in ordering. Seq is the insertion order
// assigned when the fixture was seeded; scans always return records in Seq
// order so that stable sorts and first-occurrence distinct are reproducible.
type Record struct {
	ID    string `json:"id"`
	Seq   int64  `json:"seq"`
	Mixed Value  `json:"mixed"`
}

// FieldMixed is the name of the mixed field on a Record.
const FieldMixed = "mixed"
