package imagefill

// EventKind identifies image events.
type EventKind uint8

const (
	// EventLoaded is emitted when a pending image becomes ready.
	EventLoaded EventKind = iota

	// EventError is emitted when an image fails to load.
	EventError
)

// String returns a string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "image.loaded"
	case EventError:
		return "image.error"
	default:
		return unknownMode
	}
}

// Event reports the outcome of an asynchronous image load to a host.
type Event struct {
	Kind    EventKind
	Attr    string
	Request PaintRequest

	// Fill is the fill resolved after loading. Only set for EventLoaded.
	Fill Fill

	// Err is a *LoadError. Only set for EventError.
	Err error
}
