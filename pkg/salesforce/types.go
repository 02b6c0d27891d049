// Package salesforce is the REST and SOQL client the rest of the CLI talks
// through. Calls travel over an injected relay.Channel, so the same client
// works against a live browser session, an exported token, or a test fake.
package salesforce

// Record is one row of a query response.
type Record map[string]any

// QueryResult is one page of a SOQL query response. NextRecordsURL is
// present while more pages remain; it may come back in Lightning-domain
// form and is normalized before the next fetch.
type QueryResult struct {
	TotalSize      int      `json:"totalSize"`
	Done           bool     `json:"done"`
	NextRecordsURL string   `json:"nextRecordsUrl,omitempty"`
	Records        []Record `json:"records"`
}

// Field is the schema metadata for one object field, as returned by the
// describe endpoint. Read-only; never mutated by this package.
type Field struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	Type       string `json:"type"`
	Length     int    `json:"length"`
	Precision  int    `json:"precision"`
	Scale      int    `json:"scale"`
	Nillable   bool   `json:"nillable"`
	Calculated bool   `json:"calculated"`
	Custom     bool   `json:"custom"`
}

// DescribeResult is an object's field schema.
type DescribeResult struct {
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Custom bool    `json:"custom"`
	Fields []Field `json:"fields"`
}

// APIVersion is one entry of the /services/data version listing.
type APIVersion struct {
	Label   string `json:"label"`
	URL     string `json:"url"`
	Version string `json:"version"`
}
