// Package codec converts Go values to and from value trees.
//
// Records are Go structs. Each exported field becomes an object entry
// whose key is the field's wire name, in declaration order:
//
//	type Address struct {
//	    Street  string
//	    City    string
//	    Country string
//	}
//
//	type Profile struct {
//	    SubscriptionType string            // "subscription_type"
//	    Nick             *string           // optional: NONE when nil
//	    Tags             []string          // sequence
//	    Legacy           string `surreal:"skip"`
//	    Since            time.Time `surreal:"name=created_at,default"`
//	}
//
// Sum types are Go interfaces whose variants are registered once with a
// [Registry]:
//
//	type UserType interface{ isUserType() }
//	type Guest struct{}
//	type Basic struct{ Plan string; Seats int }
//	type Premium struct{ Level int; Address Address }
//
//	reg := codec.NewRegistry(codec.Config{})
//	reg.MustRegisterEnum(codec.Enum[UserType](
//	    codec.TagKey("type"),
//	    codec.Variant[Guest](codec.Unit),
//	    codec.Variant[Basic](codec.Tuple),
//	    codec.Variant[Premium](codec.Named),
//	))
//
//	node, err := codec.Encode[UserType](reg, Premium{Level: 3})
//	// {"type": "premium", "value": {"level": 3, "address": {...}}}
//	u, err := codec.Decode[UserType](reg, node)
//
// # Enum encodings
//
// With an empty tag key (implicit encoding) a variant with a payload is
// written as a single-entry object keyed by its wire name. With tag key
// "type" (tagged encoding) it is written as {"type": name, "value":
// payload}. Unit variants are written as their bare host name under both.
//
// # Struct tags
//
// The tag key is "surreal" unless [Config].TagKey says otherwise:
//
//	name=<wire>          explicit wire name
//	skip_serializing     never written, zero value when absent
//	skip_deserializing   never read, left at the zero value
//	skip                 both of the above
//	default              zero value when the key is absent
//	-                    field ignored
//
// A blank field tagged transparent makes a single-field struct encode as
// that field's value:
//
//	type UserID struct {
//	    _  struct{} `surreal:"transparent"`
//	    ID string
//	}
//
// # Errors
//
// Decoding failures are *[Error] values. Errors in nested fields are
// wrapped with the field's wire name; [Path] recovers the failing path.
//
// # Related Packages
//
//   - github.com/signadot/go-surreal/value - value trees
//   - github.com/signadot/go-surreal/naming - wire name translation
//   - github.com/signadot/go-surreal/surql - SurrealQL rendering
package codec
