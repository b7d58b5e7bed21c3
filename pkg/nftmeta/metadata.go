package nftmeta

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Metadata is the off-chain NFT metadata document attached to a minted ticket.
type Metadata struct {
	Name                 string      `json:"name" mapstructure:"name"`
	Symbol               string      `json:"symbol" mapstructure:"symbol"`
	Description          string      `json:"description" mapstructure:"description"`
	SellerFeeBasisPoints int         `json:"seller_fee_basis_points" mapstructure:"seller_fee_basis_points"`
	ExternalURL          string      `json:"external_url,omitempty" mapstructure:"external_url"`
	Image                string      `json:"image" mapstructure:"image"`
	Attributes           []Attribute `json:"attributes" mapstructure:"attributes"`
	Properties           Properties  `json:"properties" mapstructure:"properties"`
}

type Attribute struct {
	TraitType string `json:"trait_type" mapstructure:"trait_type"`
	Value     string `json:"value" mapstructure:"value"`
}

type Properties struct {
	Creators []Creator `json:"creators" mapstructure:"creators"`
	Files    []File    `json:"files" mapstructure:"files"`
}

type Creator struct {
	Address string `json:"address" mapstructure:"address"`
	Share   int    `json:"share" mapstructure:"share"`
}

type File struct {
	URI  string `json:"uri" mapstructure:"uri"`
	Type string `json:"type" mapstructure:"type"`
}

const TicketSymbol = "TCKT"

// GenerateTicketMetadata builds the metadata document for one ticket of an event.
// The creator receives the full secondary-sale share.
func GenerateTicketMetadata(
	eventTitle, eventDate string,
	ticketNumber int,
	creatorAddress, imageURL string,
	royaltyPercent int,
) Metadata {
	return Metadata{
		Name:                 fmt.Sprintf("%s - Ticket #%d", eventTitle, ticketNumber),
		Symbol:               TicketSymbol,
		Description:          fmt.Sprintf("Ticket #%d for %s", ticketNumber, eventTitle),
		SellerFeeBasisPoints: royaltyPercent * 100,
		Image:                imageURL,
		Attributes: []Attribute{
			{TraitType: "Event", Value: eventTitle},
			{TraitType: "Ticket Number", Value: fmt.Sprintf("%d", ticketNumber)},
			{TraitType: "Event Date", Value: eventDate},
		},
		Properties: Properties{
			Creators: []Creator{
				{Address: creatorAddress, Share: 100},
			},
			Files: []File{
				{URI: imageURL, Type: "image/png"},
			},
		},
	}
}

// CollectionConfigVersion tracks the shape of CollectionConfig documents stored
// on event rows. Bump it when the shape changes so old rows stay decodable.
const CollectionConfigVersion = 1

// CollectionConfig is the serialized provisioning state of an event's ticket
// collection. It is stored as a JSON column on the event row.
type CollectionConfig struct {
	Version              int               `json:"version" mapstructure:"version"`
	Price                float64           `json:"price" mapstructure:"price"`
	ItemsAvailable       int               `json:"items_available" mapstructure:"items_available"`
	ItemsRedeemed        int               `json:"items_redeemed" mapstructure:"items_redeemed"`
	SellerFeeBasisPoints int               `json:"seller_fee_basis_points" mapstructure:"seller_fee_basis_points"`
	Symbol               string            `json:"symbol" mapstructure:"symbol"`
	Active               bool              `json:"active" mapstructure:"active"`
	Collection           CollectionInfo    `json:"collection" mapstructure:"collection"`
	Creators             []Creator         `json:"creators" mapstructure:"creators"`
	Extra                map[string]string `json:"extra,omitempty" mapstructure:"extra"`
}

type CollectionInfo struct {
	Name        string `json:"name" mapstructure:"name"`
	Family      string `json:"family" mapstructure:"family"`
	Description string `json:"description" mapstructure:"description"`
	Image       string `json:"image" mapstructure:"image"`
}

// DecodeCollectionConfig restores a CollectionConfig from the generic map shape
// a JSON column scans into.
func DecodeCollectionConfig(raw map[string]any) (CollectionConfig, error) {
	var cfg CollectionConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return CollectionConfig{}, err
	}

	if err := decoder.Decode(raw); err != nil {
		return CollectionConfig{}, err
	}

	if cfg.Version == 0 {
		cfg.Version = CollectionConfigVersion
	}

	return cfg, nil
}
