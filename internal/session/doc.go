// Package session holds the state of one honeypot conversation.
//
// # Overview
//
// A Controller owns everything the screen shows about the conversation:
// the backend session ID and persona, the chat transcript, the analysis
// of the most recent turn and the running counters. The UI calls the
// Begin*/Apply*/Fail* methods from its update loop, so the Controller is
// not safe for concurrent use.
//
// # Turn ordering
//
// Every message sent to /ingest is tagged with a sequence number. A
// response is applied only if no newer turn has been applied already;
// older responses are logged and dropped so the analysis panel never moves
// backwards. The typing indicator stays on while any turn is in flight.
//
// # Quirks kept on purpose
//
//   - Starting a second session replaces the session ID and persona but
//     keeps the transcript and counters.
//   - Clear resets the transcript, analysis and counters but keeps the
//     session ID, so messages can still be sent afterwards.
//
// # Export
//
// Snapshot builds the JSON document for the last applied turn and
// WriteExport saves it as session_<id>.json.
package session
