// Package database provides SQLite-based storage for numstat.
//
// HistoryDB stores every saved analysis (input, parsed numbers, error log and
// summary) so that earlier results can be listed, re-rendered and compared.
//
// The database is a single SQLite file opened through the pure-Go
// modernc.org/sqlite driver; only one connection is kept open.
package database
