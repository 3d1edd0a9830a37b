package entity

// Bucket is one bar of the dashboard timeline: flow count within a
// bucket-sized window starting at StartMillis.
type Bucket struct {
	StartMillis int64
	Count       int64
}

// LabelCount is a per-attack-label flow count.
type LabelCount struct {
	Label string
	Count int64
}
