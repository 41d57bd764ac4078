// Package export writes point-in-time snapshots of the record set as JSON,
// CSV, or plain text. Snapshots are one-way: jobtrack never reads them back.
// The JSON form mirrors the store file; CSV and TXT are trimmed for humans
// and spreadsheets and omit record ids.
package export
