// Package validation provides centralized input validation logic.
// This includes defaulting and checking of operation inputs, file descriptors
// and the presigned upload response returned by the service.
//
// All caller inputs are validated before any request is sent, so invalid
// arguments never reach the network.
package validation
