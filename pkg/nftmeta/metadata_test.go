package nftmeta

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateTicketMetadata(t *testing.T) {
	meta := GenerateTicketMetadata(
		"Summer Fest", "2026-07-04", 42,
		"0x00112233445566778899aabbccddeeff00112233",
		"https://cdn.example.com/events/summer.png",
		5,
	)

	require.Equal(t, "Summer Fest - Ticket #42", meta.Name)
	require.Equal(t, "TCKT", meta.Symbol)
	require.Equal(t, "Ticket #42 for Summer Fest", meta.Description)
	require.Equal(t, 500, meta.SellerFeeBasisPoints)
	require.Equal(t, "https://cdn.example.com/events/summer.png", meta.Image)

	require.Len(t, meta.Attributes, 3)
	require.Equal(t, Attribute{TraitType: "Event", Value: "Summer Fest"}, meta.Attributes[0])
	require.Equal(t, Attribute{TraitType: "Ticket Number", Value: "42"}, meta.Attributes[1])
	require.Equal(t, Attribute{TraitType: "Event Date", Value: "2026-07-04"}, meta.Attributes[2])

	require.Len(t, meta.Properties.Creators, 1)
	require.Equal(t, 100, meta.Properties.Creators[0].Share)
	require.Len(t, meta.Properties.Files, 1)
	require.Equal(t, "image/png", meta.Properties.Files[0].Type)
}

func TestGenerateTicketMetadataZeroRoyalty(t *testing.T) {
	meta := GenerateTicketMetadata("Meetup", "2026-01-01", 1, "0xabc", "", 0)
	require.Equal(t, 0, meta.SellerFeeBasisPoints)
}

func TestDecodeCollectionConfig(t *testing.T) {
	cfg := CollectionConfig{
		Version:              CollectionConfigVersion,
		Price:                2.5,
		ItemsAvailable:       100,
		SellerFeeBasisPoints: 250,
		Symbol:               "TCKT",
		Active:               true,
		Collection: CollectionInfo{
			Name:   "Summer Fest",
			Family: "Tickex",
		},
		Creators: []Creator{{Address: "0xabc", Share: 100}},
	}

	// Round-trip through JSON to reproduce the generic map shape a JSON
	// column scans into.
	b, err := json.Marshal(cfg)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))

	decoded, err := DecodeCollectionConfig(raw)
	require.NoError(t, err)
	require.Equal(t, cfg, decoded)
}

func TestDecodeCollectionConfigDefaultsVersion(t *testing.T) {
	decoded, err := DecodeCollectionConfig(map[string]any{
		"price":  float64(0),
		"symbol": "TCKT",
	})
	require.NoError(t, err)
	require.Equal(t, CollectionConfigVersion, decoded.Version)
}
