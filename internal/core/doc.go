// Package core provides the business logic layer for consultas.
//
// This package sits between the presentation layers (cmd, cli) and the
// appointment store. Functions here return errors instead of printing.
//
// # Form construction
//
// The store never generates ids. [BuildAppointment] turns raw form text into
// a record, keeping the id of an edited record or assigning a fresh
// time-ordered one ([NewID]) for a new record.
//
// # Reports and transfer
//
// [MonthSummary] totals a month's appointments. [Export] and [Import] move
// the collection to and from a JSON file in the stored format.
package core
