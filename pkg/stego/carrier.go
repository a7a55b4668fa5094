package stego

// Carrier is the common interface implemented by each embedding domain
// (LSB, DCT, DWT). The CLI and DecodeAny both drive carriers through this
// interface rather than switching on carrier name strings.
type Carrier interface {
	// Name is the carrier's registry key, e.g. "lsb".
	Name() string
	// Magic is the carrier's 4-byte framed-payload magic, e.g. "LSB1".
	Magic() string
	// Encode hides message inside the image at coverPath and writes the
	// result to outPath.
	Encode(coverPath string, message []byte, outPath string) error
	// Decode extracts the framed payload from stegoPath and returns it as
	// decoded text.
	Decode(stegoPath string) (string, error)
	// Capacity returns the maximum message bytes coverPath can carry for
	// this carrier, or 0 if the image cannot even hold a header.
	Capacity(coverPath string) (int, error)
}

// carriers is the registry of carriers, keyed by name. The map itself is
// unordered; carrierOrder below fixes the auto-detect order: LSB first
// (cheapest), DCT, then DWT (most expensive).
var carriers = map[string]Carrier{
	"lsb": lsbCarrier{},
	"dct": dctCarrier{},
	"dwt": dwtCarrier{},
}

// carrierOrder is the fixed auto-detect attempt order.
var carrierOrder = []string{"lsb", "dct", "dwt"}

// Lookup returns the registered carrier for name, or ErrUnknownCarrier.
func Lookup(name string) (Carrier, error) {
	c, ok := carriers[name]
	if !ok {
		return nil, newErr(KindUnknownCarrier, "Lookup", name)
	}
	return c, nil
}
