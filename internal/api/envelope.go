package api

// EnvelopeKind discriminates the two parsed body shapes.
type EnvelopeKind int

const (
	KindObject EnvelopeKind = iota + 1
	KindArray
)

func (k EnvelopeKind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Envelope is a parsed JSON response body holding exactly one of the
// two accepted top-level shapes: an object or an array. The zero
// Envelope holds neither.
type Envelope struct {
	object map[string]any
	array  []any
	kind   EnvelopeKind
}

// ObjectEnvelope wraps a parsed JSON object.
func ObjectEnvelope(obj map[string]any) Envelope {
	return Envelope{kind: KindObject, object: obj}
}

// ArrayEnvelope wraps a parsed JSON array.
func ArrayEnvelope(arr []any) Envelope {
	return Envelope{kind: KindArray, array: arr}
}

// Kind reports which variant the envelope holds.
func (e Envelope) Kind() EnvelopeKind {
	return e.kind
}

// Object returns the object variant; ok is false for any other kind.
func (e Envelope) Object() (map[string]any, bool) {
	return e.object, e.kind == KindObject
}

// Array returns the array variant; ok is false for any other kind.
func (e Envelope) Array() ([]any, bool) {
	return e.array, e.kind == KindArray
}
