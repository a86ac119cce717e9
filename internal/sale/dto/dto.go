package dto

import "time"

// SaleFilters selects ledger rows. From is inclusive, To exclusive.
type SaleFilters struct {
	From         *time.Time
	To           *time.Time
	ShopCode     string
	CustomerType string
}

// SaleRecordedEvent is published after a sale commits.
type SaleRecordedEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Payload   SaleEventPayload `json:"payload"`
	Timestamp time.Time        `json:"timestamp"`
}

type SaleEventPayload struct {
	SaleID       string `json:"sale_id"`
	TyreID       string `json:"tyre_id"`
	ShopCode     string `json:"shop_code"`
	CustomerType string `json:"customer_type"`
	QuantitySold int    `json:"quantity_sold"`
	UnitPrice    string `json:"unit_price"`
	TotalAmount  string `json:"total_amount"`
	Profit       string `json:"profit"`
	StockLeft    int    `json:"stock_left"`
	UpdatedBy    string `json:"updated_by,omitempty"`
}

const EventSaleRecorded = "SaleRecorded"
