// Package sqlite provides a SQLite-backed implementation of the
// AttachmentStore driven port. Cases and their image attachments are
// stored in a single database file under the caseview data directory,
// with schema migrations embedded at compile time.
package sqlite
