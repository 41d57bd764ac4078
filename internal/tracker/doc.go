// Package tracker wires the record store and the reminder engine into the
// single facade the CLI talks to.
//
// It holds a flock-based single-instance lock on the data directory so two
// processes cannot interleave writes to the JSON files, and it owns the
// choreography that spans both components: computing pending reminders over
// the live record set, bulk-dismissing the pending subset, and pruning
// dismissals after a record is deleted.
package tracker
