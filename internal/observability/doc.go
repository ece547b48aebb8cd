// Package observability builds the console logger used across todo and the
// optional task history. Logs go to stderr so they never mix with command
// output on stdout.
package observability
