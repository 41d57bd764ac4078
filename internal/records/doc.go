// Package records owns the job-application record set and its on-disk
// representation.
//
// The full set is held in memory and every mutation is persisted
// immediately through a two-file crash-safe protocol: writes land in a
// temporary sibling, the previous primary is rotated to a .bak backup,
// and the temporary is renamed onto the primary path. Loading falls back
// to the backup when the primary is unreadable; when both files are
// unreadable the store reports a RecoveryError instead of fabricating an
// empty history.
//
// Collaborators never mutate the collection directly. All changes go
// through Create, Update, and Delete, which validate their input and
// serialize behind the store mutex.
package records
