package model

import "github.com/tickex-lab/backend/pkg/nftmeta"

// Collection provisioning. The request mirrors the event attributes the
// provisioning service needs; it never sees the event row itself.
type ProvisionCollectionRequest struct {
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	TotalSupply int     `json:"total_supply"`
	Price       float64 `json:"price"`
	IsFree      bool    `json:"is_free"`
	Royalty     int     `json:"royalty"`
	Creator     string  `json:"creator"`
}

type ProvisionCollectionResponse struct {
	Address string                   `json:"address"`
	Config  nftmeta.CollectionConfig `json:"config"`
}
