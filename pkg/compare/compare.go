// Package compare scans pairs of related objects for "twin" fields: fields
// sharing an API name on both sides whose declared types may have drifted
// apart. CPQ orgs grow these twins across Quote/Opportunity and line-level
// objects, and a type mismatch between twins is a common source of sync
// bugs.
package compare

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/cpqscope/cli/pkg/salesforce"
)

// Describer is the slice of the Salesforce client this package needs.
type Describer interface {
	Describe(ctx context.Context, objectName string) (*salesforce.DescribeResult, error)
}

// Pair names two objects to scan against each other.
type Pair struct {
	Left  string
	Right string
}

func (p Pair) String() string { return p.Left + ":" + p.Right }

// ParsePair parses "Left:Right".
func ParsePair(s string) (Pair, error) {
	left, right, found := strings.Cut(s, ":")
	if !found || strings.TrimSpace(left) == "" || strings.TrimSpace(right) == "" {
		return Pair{}, fmt.Errorf("invalid pair %q: expected Left:Right object names", s)
	}
	return Pair{Left: strings.TrimSpace(left), Right: strings.TrimSpace(right)}, nil
}

// Twin is one field present on both sides of a pair.
type Twin struct {
	Name  string
	Left  salesforce.Field
	Right salesforce.Field
	Match bool
}

// PairReport is the scan outcome for one pair.
type PairReport struct {
	Pair  Pair
	Twins []Twin
}

// Drift returns the twins whose types disagree.
func (r PairReport) Drift() []Twin {
	return lo.Filter(r.Twins, func(t Twin, _ int) bool { return !t.Match })
}

// Skip records a pair the scan could not describe.
type Skip struct {
	Pair   Pair
	Reason string
}

// ScanResult holds reports for the pairs that described cleanly and skips
// for those that did not.
type ScanResult struct {
	Reports []PairReport
	Skipped []Skip
}

// Scan describes every pair and matches twin fields. A describe failure
// skips that pair and the scan continues, so a long pair list still yields
// partial results. Only ctx cancellation aborts the whole scan.
func Scan(ctx context.Context, d Describer, pairs []Pair) (ScanResult, error) {
	var result ScanResult
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		left, err := d.Describe(ctx, pair.Left)
		if err != nil {
			result.Skipped = append(result.Skipped, Skip{Pair: pair, Reason: fmt.Sprintf("describe %s: %v", pair.Left, err)})
			continue
		}
		right, err := d.Describe(ctx, pair.Right)
		if err != nil {
			result.Skipped = append(result.Skipped, Skip{Pair: pair, Reason: fmt.Sprintf("describe %s: %v", pair.Right, err)})
			continue
		}
		result.Reports = append(result.Reports, matchTwins(pair, left, right))
	}
	return result, nil
}

func matchTwins(pair Pair, left, right *salesforce.DescribeResult) PairReport {
	leftIdx := lo.KeyBy(left.Fields, func(f salesforce.Field) string { return f.Name })
	rightIdx := lo.KeyBy(right.Fields, func(f salesforce.Field) string { return f.Name })

	names := lo.Filter(lo.Keys(leftIdx), func(name string, _ int) bool {
		_, ok := rightIdx[name]
		return ok
	})
	sort.Strings(names)

	report := PairReport{Pair: pair}
	for _, name := range names {
		l, r := leftIdx[name], rightIdx[name]
		report.Twins = append(report.Twins, Twin{
			Name:  name,
			Left:  l,
			Right: r,
			Match: salesforce.FormatFieldType(l) == salesforce.FormatFieldType(r),
		})
	}
	return report
}

// WriteCSV renders the scan reports as CSV.
func WriteCSV(w io.Writer, reports []PairReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Pair", "Field", "Left Type", "Right Type", "Status"}); err != nil {
		return err
	}
	for _, report := range reports {
		for _, twin := range report.Twins {
			status := "match"
			if !twin.Match {
				status = "drift"
			}
			row := []string{
				report.Pair.String(),
				twin.Name,
				salesforce.FormatFieldType(twin.Left),
				salesforce.FormatFieldType(twin.Right),
				status,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
