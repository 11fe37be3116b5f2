// Package value provides the generic value tree exchanged with the store.
//
// A [Value] is a tagged node. Its Type selects which of the remaining
// fields are meaningful:
//
//	NoneType      no payload
//	BoolType      Bool
//	NumberType    Int64 or Float64
//	StringType    String
//	ArrayType     Values
//	ObjectType    Fields and Values, index aligned, in insertion order
//	ThingType     Thing (record identity: table and key)
//	DurationType  Duration
//	DatetimeType  Time
//
// Object keys keep insertion order so that encoding the same Go value
// twice yields identical trees. Values are built fresh by the codec on
// every call and are not meant to be mutated after construction.
//
// # Interop
//
// Value trees marshal to a lossless typed JSON form (see
// [Value.MarshalJSON]). [FromPlain] and [ToPlain] convert to and from
// plain Go data (maps, slices, scalars), and [ParsePlain] reads such data
// from a JSON or YAML document keeping object key order.
//
// # Related Packages
//
//   - github.com/signadot/go-surreal/codec - Go values to and from value trees
//   - github.com/signadot/go-surreal/surql - SurrealQL text rendering
//   - github.com/signadot/go-surreal/wirecbor - CBOR encoding
package value
