package domain

// School mirrors one establishment record from the national school data set.
// URN is the unique reference number used to key reviews.
type School struct {
	URN       int
	Name      string
	Postcode  string
	Town      string
	Phase     string
	Gender    string
	Website   string
	Telephone string
	Capacity  *int
	Pupils    *int
}
