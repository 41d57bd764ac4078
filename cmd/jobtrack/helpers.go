package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"jobtrack/internal/records"
)

// timeRounding keeps displayed dismissal ages readable.
const timeRounding = time.Minute

var recordHeaders = []string{"ID", "Company", "Position", "Applied", "Status", "Location"}

func recordRows(recs []records.Record) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			rec.ID,
			rec.Company,
			rec.Position,
			rec.AppliedDate.String(),
			rec.Status.Display(),
			rec.Location(),
		})
	}
	return rows
}

// sortRecords orders a copy of recs by the given column. Text columns use
// locale-aware case-insensitive collation; the sort never touches the store's
// own ordering.
func sortRecords(recs []records.Record, column string, descending bool) ([]records.Record, error) {
	sorted := append([]records.Record(nil), recs...)

	var less func(a, b records.Record) bool
	switch strings.ToLower(strings.TrimSpace(column)) {
	case "company":
		coll := collate.New(language.Und, collate.IgnoreCase)
		less = func(a, b records.Record) bool { return coll.CompareString(a.Company, b.Company) < 0 }
	case "position":
		coll := collate.New(language.Und, collate.IgnoreCase)
		less = func(a, b records.Record) bool { return coll.CompareString(a.Position, b.Position) < 0 }
	case "date":
		less = func(a, b records.Record) bool { return a.AppliedDate.Before(b.AppliedDate.Time) }
	case "status":
		less = func(a, b records.Record) bool { return a.Status < b.Status }
	default:
		return nil, fmt.Errorf("unsupported sort column %q (want company, position, date, or status)", column)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted, nil
}

func filterRecords(recs []records.Record, hideRejected bool, country string) []records.Record {
	country = strings.ToLower(strings.TrimSpace(country))
	out := make([]records.Record, 0, len(recs))
	for _, rec := range recs {
		if hideRejected && rec.Status == records.StatusRejected {
			continue
		}
		if country != "" && strings.ToLower(rec.Country) != country {
			continue
		}
		out = append(out, rec)
	}
	return out
}
