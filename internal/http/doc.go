// Package http provides HTTP handlers and middleware for the room
// reservation API.
//
// The router exposes the following endpoints:
//   - POST /register: creates an account. Body: {"name","email","password"}.
//   - POST /login: issues a session token. Body: {"email","password"}. Response:
//     {"token","expires_at","user"} with the token also surfaced via a
//     `session_token` cookie.
//   - POST /logout: revokes the current session token extracted from the
//     Authorization header or session cookie. Returns 204 No Content and
//     clears the cookie.
//   - GET /rooms, POST /rooms, PUT /rooms/{id}, DELETE /rooms/{id}: room
//     catalog endpoints exchanging the `roomDTO` payload defined in
//     room_handler.go. Deleting a room also deletes its reservations.
//   - GET /reservations?date=|?room_id=, POST /reservations,
//     DELETE /reservations/{id}: reservation endpoints exchanging the
//     `reservationDTO` payload defined in reservation_handler.go. An
//     overlapping booking is rejected with 409.
//   - GET /reservations/conflict?room_id=&date=&start_time=&end_time=
//     [&exclude_id=]: pre-flight overlap check returning {"conflict":bool}.
//   - GET /agenda?date=: one day of the 06:00-22:00 hourly grid for every
//     room, defined in agenda_handler.go.
//
// Everything except /register and /login sits behind the session middleware.
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
