// Package errs defines the sentinel errors shared across intlist packages.
//
// Errors fall into two groups: construction errors returned when caller-supplied
// sequences violate the input contract, and deserialization errors returned when
// serialized bytes are corrupt, incomplete, or inconsistent. Callers can match
// individual sentinels with errors.Is, or match the whole deserialization group
// via ErrFailedDeserialize which wraps every decode failure at the facade level.
package errs

import "errors"

// Construction errors.
var (
	// ErrEmptyOrUnsortedInput is returned when the input sequence is empty or
	// not in non-decreasing order.
	ErrEmptyOrUnsortedInput = errors.New("input sequence is empty or not sorted in ascending order")
)

// Deserialization errors.
var (
	// ErrInvalidHeaderSize is returned when the data is too short to contain a
	// complete header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidMagicNumber is returned when the header magic number does not
	// identify a known intlist format version.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrMalformedHeader is returned when header fields are internally
	// inconsistent, e.g. a zero element count or an impossible low-bit width.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrTruncatedPayload is returned when the data holds fewer payload bytes
	// than the header declares.
	ErrTruncatedPayload = errors.New("truncated payload")

	// ErrChecksumMismatch is returned when the payload checksum stored in the
	// header does not match the payload bytes.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")

	// ErrInvalidCompressionType is returned when the header declares an
	// unknown payload compression type.
	ErrInvalidCompressionType = errors.New("invalid compression type")

	// ErrFailedDeserialize wraps any deserialization failure surfaced through
	// the IntegerList facade.
	ErrFailedDeserialize = errors.New("failed to deserialize integer list")
)
