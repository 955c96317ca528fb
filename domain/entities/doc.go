// Package entities provides the core data model shared by every layer of the
// SDK: messages, outcomes, block identity, and lifecycle events. These are
// the in-memory forms; the wire encoding lives in package wireformat.
package entities
