// Package journal records panosort runs and their matches in SQLite.
//
// The journal is history only: the scanner never reads it back to decide what
// to copy, so deleting the database changes nothing about future runs.
package journal
