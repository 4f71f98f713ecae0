package stock

type SearchStockRequest struct {
	ProductCodes []string `json:"productCodes"`
}

type SearchStockResponse struct {
	Stock    []StockDTO `json:"stock"`
	NotFound []string   `json:"notFound"`
}

type StockDTO struct {
	ProductCode    string `json:"productCode"`
	OnHand         *int   `json:"onHand"`
	Reserved       *int   `json:"reserved"`
	AvailableStock int    `json:"availableStock"`
}
