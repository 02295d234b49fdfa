// Package services contains the core business logic implementing the
// driving port interfaces. Services depend only on driven ports and the
// domain; all I/O specifics live in adapters.
package services
