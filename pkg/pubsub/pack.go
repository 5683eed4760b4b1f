package pubsub

// Pack is the unit published to a topic. Key is used for partitioning, Msg is
// an opaque serialized payload.
type Pack struct {
	Key []byte
	Msg []byte
}
