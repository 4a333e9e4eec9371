// Package server exposes trade sessions over websocket.
//
// Each websocket connection owns an independent session. Text messages carry
// one or more newline-separated lines; every evaluated line gets one JSON
// reply, in order. Lines within a connection are never evaluated
// concurrently.
package server
