// Package services contains the implementation of all services used by the web server.
//
// The services are responsible for interacting with the database and performing anything that is not strictly HTTP-related.
// The services are injected into the web server, and are used to handle requests dispatched by it.
//
// Current services include:
//   - ClientService:
//     Is the main handler for dispatched http requests. It mediates between the web layer and the
//     user/account stores: listing, lookup, insertion, deletion, login and signup.
//   - EventService:
//     Publishes user lifecycle events to a RabbitMQ queue when a broker is configured.
package services
