package ingest

// Column offsets (0-indexed) of the fixed-position export format produced by
// the external inventory tool. The layout is inherited and must be preserved
// byte-for-byte for drop-in compatibility; this table is the single place
// that knows it.
const (
	colID          = 3
	colStatus      = 4
	colServiceDate = 7
	colTotalAmount = 17
	colPendingPay  = 19
	colZipCode     = 25
	colCity        = 26
	colNotes       = 33
	colAddress     = 34
	colPhone1      = 36
	colPhone2      = 37
)
