package stackitem

import "errors"

// MaxDeserialized bounds the number of elements Struct.Equals and
// Struct.Clone will walk before giving up. It mirrors the engine's default
// MaxStackSize so a single pathological struct can't outrun the limit that
// would otherwise have rejected it.
const MaxDeserialized = 2048

// ErrInvalidType is returned when an item's concrete type doesn't satisfy
// an operation's requirements (e.g. an unsupported map key type).
var ErrInvalidType = errors.New("invalid type")
