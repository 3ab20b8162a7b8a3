package domain

// Table is a mongo collection name.
type Table string

const (
	TableSales           Table = "sales"
	TableSaleIndexes     Table = "sale_indexes"
	TableStorageDeposits Table = "storage_deposits"
	TablePayTokens       Table = "pay_tokens"
)
