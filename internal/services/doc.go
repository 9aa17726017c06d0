// Package services defines the [EmployeeService] interface for the remote roster service and implements it over HTTP.
//
// # Service Interface
//
// The roster screen only talks to the service through [EmployeeService], so controllers and commands can be
// exercised against an in-memory fake.
//
// # HTTP Implementation
//
// [HTTPEmployeeService] maps each operation onto the service's JSON routes:
//   - GET  /api/Employees/getAllEmployees
//   - GET  /api/Employees/getEmpByID/{id}
//   - POST /api/Employees/addEmployee
//   - POST /api/Employees/editEmployee
//   - GET  /api/Employees/deleteEmpByID/{id}
//
// Requests go through [APIService], which sets JSON headers, waits on an optional rate limiter and re-sends a
// failed request once by default.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrServiceUnavailable] : the request could not be sent
//   - [shared.ErrNotFound] : the service answered 404
//   - [shared.ErrAPIRequest] : any other non-2xx status, or an undecodable body
package services
