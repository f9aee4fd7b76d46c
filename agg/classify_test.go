package agg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_NodeSpellings(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		module string
		want   EntityKey
		ok     bool
	}{
		{"LoRaNetworkTest.loRaNodes[12].app[0]", "12", true},
		{"net.node[0].udp", "0", true},
		{"Net.Node[4].mac", "4", true}, // spelling match is case-insensitive
		{"net.radioMedium", "", false},
		{"GW0.app", "", false}, // no bracketed node index
		{"net.nodes[3].app", "", false},
	}
	for _, tc := range tests {
		got, ok := c.Classify(tc.module)
		assert.Equal(t, tc.ok, ok, "module %q", tc.module)
		assert.Equal(t, tc.want, got, "module %q", tc.module)
	}
}

func TestClassify_GatewayMarkersPrefixKey(t *testing.T) {
	c := NewClassifier(nil)

	for _, module := range []string{
		"net.loRaGW.node[3].forwarder", // "GW" substring
		"net.PacketForwarder.node[3]",
		"net.NetworkServer.node[3].udp",
	} {
		got, ok := c.Classify(module)
		assert.True(t, ok, "module %q", module)
		assert.Equal(t, EntityKey("GW3"), got, "module %q", module)
	}
}

func TestClassify_GatewayAndNodeNeverMerge(t *testing.T) {
	c := NewClassifier(nil)

	node, ok := c.Classify("net.node[0].app")
	assert.True(t, ok)

	gw, ok := c.Classify("net.PacketForwarder.node[0]")
	assert.True(t, ok)

	assert.NotEqual(t, node, gw, "node 0 and gateway 0 are distinct statistical subjects")

	// A module with the same numeric token but no node index contributes
	// to no entity at all.
	_, ok = c.Classify("GW0.app")
	assert.False(t, ok)
}

func TestClassify_CustomMarkers(t *testing.T) {
	c := NewClassifier([]string{"Sink"})

	got, ok := c.Classify("net.Sink.node[2]")
	assert.True(t, ok)
	assert.Equal(t, EntityKey("GW2"), got)

	// default markers are not consulted when a custom list is given
	got, ok = c.Classify("net.PacketForwarder.node[2]")
	assert.True(t, ok)
	assert.Equal(t, EntityKey("2"), got)
}
