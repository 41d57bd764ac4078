// Command jobtrack is the CLI for the job-application tracker: it lists,
// creates, edits, and deletes application records, shows the pending
// reminders for the current 24-hour cycle, and exports snapshots. All
// persistence lives in the internal store and engine packages; the CLI is a
// thin presentation layer over the tracker facade.
package main
