package agg

import (
	"regexp"
	"strings"
)

// nodePattern extracts the numeric index from bracketed node module paths.
// Both spellings occur in the wild: FLoRa networks name end devices
// loRaNodes[i], older scenario files use node[i].
var nodePattern = regexp.MustCompile(`(?i)(?:loRaNodes|node)\[(\d+)\]`)

// DefaultGatewayMarkers are the module-path substrings that mark a module
// as belonging to a gateway rather than an end node.
var DefaultGatewayMarkers = []string{"GW", "PacketForwarder", "NetworkServer"}

// Classifier maps module paths to entity keys. It is a pure function over
// its fixed marker list and safe for concurrent use.
type Classifier struct {
	gatewayMarkers []string
}

// NewClassifier builds a classifier. An empty marker list selects
// DefaultGatewayMarkers.
func NewClassifier(gatewayMarkers []string) *Classifier {
	if len(gatewayMarkers) == 0 {
		gatewayMarkers = DefaultGatewayMarkers
	}
	return &Classifier{gatewayMarkers: gatewayMarkers}
}

// Classify derives the entity key for a module path. ok is false when the
// path carries no recognizable node index; such samples are excluded from
// per-entity aggregation. A gateway marker anywhere in the path prefixes
// the key with "GW" so gateway 3 and node 3 stay separate subjects.
func (c *Classifier) Classify(module string) (EntityKey, bool) {
	m := nodePattern.FindStringSubmatch(module)
	if m == nil {
		return "", false
	}
	id := m[1]
	for _, marker := range c.gatewayMarkers {
		if strings.Contains(module, marker) {
			return EntityKey("GW" + id), true
		}
	}
	return EntityKey(id), true
}
