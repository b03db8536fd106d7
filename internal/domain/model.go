package domain

import "time"

// Базовые доменные сущности

// Product — идентификатор товара, без внутренней структуры.
type Product = string

type InventoryEntry struct {
	Quantity float64
}

// Receipt — результат одного вызова Sell.
type Receipt struct {
	BoughtQuantity float64
	Cost           float64
}

// Контракт продавца
type Seller interface {
	ID() string
	Inventory(product Product) (InventoryEntry, bool)
	Quote(product Product) (float64, error)
	// Sell списывает остаток; BoughtQuantity <= qty и <= остатка на момент вызова.
	Sell(product Product, qty float64) (Receipt, error)
	DeliveryWait() time.Duration
}

// Stocker — продавец, который умеет перечислить свой склад (необязательно).
type Stocker interface {
	Products() map[Product]InventoryEntry
}

// Market — упорядоченный набор продавцов, индексы стабильны.
type Market interface {
	Sellers() []Seller
}

// Параметры запроса стаканов и задержек
type Config struct {
	DelayMS int `json:"delay_ms"`
	Limit   int `json:"limit"`
}
