// Package web contains the HTTP surface of the users API: the fiber server, its route table,
// the bearer token middleware, and the request validation helper. Handlers translate results
// from the client service into status codes and JSON bodies and never see raw store faults.
package web
