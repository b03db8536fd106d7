package httpapi

type FillRequest struct {
	Product  string  `json:"product"`
	Quantity float64 `json:"quantity"`
	Strategy string  `json:"strategy"` // best_price | fastest | largest
}

type ReceiptDTO struct {
	ID        string  `json:"id,omitempty"`
	Seller    string  `json:"seller"`
	Requested float64 `json:"requested"`
	Bought    float64 `json:"bought"`
	Cost      float64 `json:"cost"`
}

type FillResponse struct {
	Product      string       `json:"product"`
	Strategy     string       `json:"strategy"`
	Requested    float64      `json:"requested"`
	Bought       float64      `json:"bought"`
	Remaining    float64      `json:"remaining"`
	TotalCost    float64      `json:"totalCost"`
	AveragePrice float64      `json:"averagePrice"`
	Status       string       `json:"status"`
	DryRun       bool         `json:"dryRun"`
	Receipts     []ReceiptDTO `json:"receipts"`
	GeneratedAt  string       `json:"generatedAt"`
}

type ListingDTO struct {
	Seller       string  `json:"seller"`
	Price        float64 `json:"price"`
	Quantity     float64 `json:"quantity"`
	DeliveryWait string  `json:"deliveryWait"`
}

type ListingsResponse struct {
	Product  string       `json:"product"`
	Strategy string       `json:"strategy"`
	Listings []ListingDTO `json:"listings"`
}

type BestPriceResponse struct {
	Product string  `json:"product"`
	Found   bool    `json:"found"`
	Price   float64 `json:"price"` // 0, если предложений нет
	Seller  string  `json:"seller,omitempty"`
}

// StockDTO — остаток товара; Price пустая, если продавец не смог дать котировку.
type StockDTO struct {
	Quantity float64  `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

type SellerDTO struct {
	ID           string              `json:"id"`
	DeliveryWait string              `json:"deliveryWait"`
	Stock        map[string]StockDTO `json:"stock,omitempty"`
}

type SellersResponse struct {
	Sellers  []SellerDTO `json:"sellers"`
	Products []string    `json:"products"`
}
type ErrorResponse struct {
	Error string `json:"error"`
}
