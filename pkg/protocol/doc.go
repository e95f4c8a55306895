// Package protocol is the compact binary encoding of journal records used by
// live sessions that ask for binary frames.
//
// A frame is a one-byte type, a varint payload length and the payload.
// Strings are varint length-prefixed UTF-8. A patch payload is:
//
//	seq       varint
//	count     varint
//	record*   op byte, field mask byte, present fields in mask order,
//	          attr count varint, attr* (key string, removed bool, value string)
//
// Decoding enforces allocation and count limits so a hostile length prefix
// cannot force a large allocation.
package protocol
