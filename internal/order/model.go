package order

// StatusProcessing is the only status an order ever carries: it is set on
// creation and never transitions.
const StatusProcessing = "processing"

// DateLayout is the storage format for delivery dates.
const DateLayout = "2006-01-02"

type Order struct {
	ID           int64   `json:"id" db:"id"`
	CustomerName string  `json:"customer_name" db:"customer_name"`
	Product      string  `json:"product" db:"product"`
	Quantity     int     `json:"quantity" db:"quantity"`
	Price        float64 `json:"price" db:"price"` // Используем float64 для денег, как и колонка REAL в схеме
	DeliveryDate string  `json:"delivery_date" db:"delivery_date"`
	Status       string  `json:"status" db:"status"`
}

// LineTotal is the derived order amount. It is never stored, only recomputed.
func (o *Order) LineTotal() float64 {
	return float64(o.Quantity) * o.Price
}

// ActivityRecord is the per-day aggregate derived from orders, keyed by
// delivery date. It is maintained incrementally on every mutation and is never
// recomputed on read.
type ActivityRecord struct {
	ID          int64   `json:"id" db:"id"`
	Date        string  `json:"date" db:"date"`
	OrdersCount int     `json:"orders_count" db:"orders_count"`
	Revenue     float64 `json:"revenue" db:"revenue"`
}

// RevenuePoint is one point of the revenue-by-day series.
type RevenuePoint struct {
	Date    string  `json:"date" db:"date"`
	Revenue float64 `json:"revenue" db:"revenue"`
}

type GeneralStats struct {
	TotalOrders       int64   `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
}
