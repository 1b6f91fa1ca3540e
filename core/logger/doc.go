// Package logger records what a shell session executed as newline delimited
// JSON events, and summarizes those logs.
package logger
