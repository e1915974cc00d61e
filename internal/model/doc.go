// Package model defines the data structures used throughout consultas.
//
// # Appointment
//
// The [Appointment] struct is the only persisted entity:
//
//	type Appointment struct {
//	    ID          string    // Unique identifier (UUIDv7, assigned on creation)
//	    PatientName string    // Free text, may be empty
//	    Date        string    // Stored verbatim, parsed with ParseDate
//	    Amount      Amount    // Decimal monetary value
//	    Frequency   Frequency // Monthly or biweekly
//	}
//
// # Wire format
//
// Records are serialized with the field names of the stored collection
// ("id", "paciente", "date", "valor", "tipo"). [Frequency] maps to the
// tags "mensal" and "quinzenal" only at the JSON boundary; everywhere else
// it is a closed enumeration.
package model
