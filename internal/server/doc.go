// Package server provides HTTP routing, middleware, and the sandbox roster service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Sandbox Service
//
// [EmployeeHandler] serves the same routes as the remote roster service so the client can be run end to end
// without it:
//   - GET  /api/Employees/getAllEmployees
//   - GET  /api/Employees/getEmpByID/{id}
//   - POST /api/Employees/addEmployee
//   - POST /api/Employees/editEmployee
//   - GET  /api/Employees/deleteEmpByID/{id}
//
// Bodies are validated with the same rules as the client form. Ids are assigned by the store.
//
// [NewSandboxRouter] adds request ids, panic recovery and request logging. [ListenAndServe] runs the server
// until its context is canceled.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
