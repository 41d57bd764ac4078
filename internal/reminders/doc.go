// Package reminders computes which job applications currently need the
// user's attention and tracks per-record dismissals.
//
// A dismissal suppresses a record from pending results until the 24-hour
// cycle anchored at last_reset expires, at which point all dismissals are
// cleared. The reset is an on-read side effect of Pending, not a background
// timer. Records with a terminal status (approved, rejected) are never
// pending regardless of dismissal state.
//
// The state file uses the same crash-safe two-file protocol as the record
// store. Dismissal entries for deleted records are tolerated and pruned,
// never treated as an error.
package reminders
