package models

import "errors"

// AssetType covers every trackable store of value, liabilities included.
type AssetType string

const (
	AssetLiquid     AssetType = "liquid"
	AssetInvestment AssetType = "investment"
	AssetProperty   AssetType = "property"
	AssetVehicle    AssetType = "vehicle"
	AssetValuable   AssetType = "valuable"
	AssetLiability  AssetType = "liability"
)

var validAssetTypes = map[AssetType]struct{}{
	AssetLiquid: {}, AssetInvestment: {}, AssetProperty: {},
	AssetVehicle: {}, AssetValuable: {}, AssetLiability: {},
}

// Asset is any trackable store of value.
type Asset struct {
	ID       int       `json:"id,omitempty"`
	Name     string    `json:"name"`
	Type     AssetType `json:"type"`
	Balance  float64   `json:"balance"`
	Currency string    `json:"currency,omitempty"`
}

func (a Asset) Validate() error {
	if a.Name == "" {
		return ErrEmptyName
	}
	if _, ok := validAssetTypes[a.Type]; !ok {
		return errors.New("invalid asset type")
	}
	return nil
}

// Transfer moves value between two assets; the backend books it as a pair
// of postings.
type Transfer struct {
	FromAssetID int     `json:"from_asset_id"`
	ToAssetID   int     `json:"to_asset_id"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
}

func (t Transfer) Validate() error {
	if t.FromAssetID == t.ToAssetID {
		return ErrSameAsset
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if t.Date == "" {
		return ErrEmptyDate
	}
	return nil
}
