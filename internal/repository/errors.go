// Package repository implements the persistence layer over raw SQL.
// Repositories signal a missing row with sql.ErrNoRows so that higher
// layers can translate it into a not-found error; every other error
// is an infrastructure failure and is passed through untouched. All
// single-row updates are atomic. Operations that must touch more than
// one row expose ...Tx variants and leave transaction control to the
// caller, which must commit or rollback.
package repository
