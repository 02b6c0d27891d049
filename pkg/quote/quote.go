// Package quote recomputes CPQ quote-line totals locally so they can be
// checked against what the org's price rules actually produced.
package quote

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cpqscope/cli/pkg/salesforce"
)

// Querier is the slice of the Salesforce client this package needs.
type Querier interface {
	Query(ctx context.Context, soql string) ([]salesforce.Record, error)
}

// Line is one quote line with its recomputed net total.
type Line struct {
	ID        string
	Product   string
	Quantity  float64
	ListPrice float64
	Discount  float64
	NetTotal  float64
}

// Simulation is the recomputed state of one quote.
type Simulation struct {
	QuoteID  string
	Lines    []Line
	NetTotal float64
}

// Simulate fetches the quote's lines and recomputes each net total as
// quantity * list price * (1 - discount/100), rounded to cents.
func Simulate(ctx context.Context, q Querier, quoteID string) (*Simulation, error) {
	soql := fmt.Sprintf(
		"SELECT Id, SBQQ__ProductName__c, SBQQ__Quantity__c, SBQQ__ListPrice__c, SBQQ__Discount__c "+
			"FROM SBQQ__QuoteLine__c WHERE SBQQ__Quote__c = '%s' ORDER BY SBQQ__Number__c",
		escapeSOQL(quoteID),
	)
	records, err := q.Query(ctx, soql)
	if err != nil {
		return nil, fmt.Errorf("fetch quote lines: %w", err)
	}

	sim := &Simulation{QuoteID: quoteID}
	for _, rec := range records {
		line := Line{
			ID:        str(rec, "Id"),
			Product:   str(rec, "SBQQ__ProductName__c"),
			Quantity:  num(rec, "SBQQ__Quantity__c"),
			ListPrice: num(rec, "SBQQ__ListPrice__c"),
			Discount:  num(rec, "SBQQ__Discount__c"),
		}
		line.NetTotal = roundCents(line.Quantity * line.ListPrice * (1 - line.Discount/100))
		sim.Lines = append(sim.Lines, line)
		sim.NetTotal = roundCents(sim.NetTotal + line.NetTotal)
	}
	return sim, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func escapeSOQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}

func str(rec salesforce.Record, key string) string {
	v, _ := rec[key].(string)
	return v
}

// num tolerates null fields; encoding/json decodes SOQL numbers as float64.
func num(rec salesforce.Record, key string) float64 {
	v, _ := rec[key].(float64)
	return v
}
