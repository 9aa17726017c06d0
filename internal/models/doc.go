// Package models defines the employee records exchanged with the remote roster service.
//
// The package contains two record shapes:
//
//  1. [Employee] : a record as held by the remote service and mirrored in the client's record store.
//     The ID is nil until the service assigns one and never changes afterwards.
//  2. [Candidate] : a record being created or edited in a form. For edits the ID names the record
//     being replaced and doubles as the exclusion key for duplicate checks.
//
// JSON field names follow the remote service (empId, empName, ...).
package models
