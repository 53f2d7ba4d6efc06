// Package console holds the UI-side duties of the application: form
// validation before anything reaches the order service, plain-text rendering
// of tables and statistics, and log export.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"delivery-service/internal/order"
)

var (
	ErrEmptyCustomer   = errors.New("customer name is required")
	ErrEmptyProduct    = errors.New("product name is required")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidPrice    = errors.New("price must be a positive number")
	ErrInvalidDate     = errors.New("delivery date must be in YYYY-MM-DD format")
)

// ParseOrderForm validates raw form input and builds an order from it. The
// store itself is permissive, so every precondition of AddOrder is checked
// here and nowhere else.
func ParseOrderForm(customer, product, quantityStr, priceStr, dateStr string) (*order.Order, error) {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return nil, ErrEmptyCustomer
	}

	product = strings.TrimSpace(product)
	if product == "" {
		return nil, ErrEmptyProduct
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(quantityStr))
	if err != nil || quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(priceStr), 64)
	if err != nil || price <= 0 {
		return nil, ErrInvalidPrice
	}

	parsed, err := time.Parse(order.DateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return nil, ErrInvalidDate
	}

	return &order.Order{
		CustomerName: customer,
		Product:      product,
		Quantity:     quantity,
		Price:        price,
		DeliveryDate: parsed.Format(order.DateLayout),
	}, nil
}

func RenderOrders(w io.Writer, orders []order.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "no orders yet")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tPRODUCT\tQTY\tPRICE\tDELIVERY\tSTATUS\tTOTAL")
	for i := range orders {
		o := &orders[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.2f\t%s\t%s\t%.2f\n",
			o.ID, o.CustomerName, o.Product, o.Quantity, o.Price, o.DeliveryDate, o.Status, o.LineTotal())
	}
	tw.Flush()
}

func RenderRevenue(w io.Writer, points []order.RevenuePoint) {
	if len(points) == 0 {
		fmt.Fprintln(w, "no revenue data for the selected period")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tREVENUE")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%.2f\n", p.Date, p.Revenue)
	}
	tw.Flush()
}

func RenderGeneralStats(w io.Writer, stats order.GeneralStats) {
	fmt.Fprintf(w, "Total orders:        %d\n", stats.TotalOrders)
	fmt.Fprintf(w, "Total revenue:       %.2f\n", stats.TotalRevenue)
	fmt.Fprintf(w, "Average order value: %.2f\n", stats.AverageOrderValue)
}

// ExportLogs copies the activity log into a timestamped file next to it and
// returns the path of the copy.
func ExportLogs(logPath string) (string, error) {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return "", fmt.Errorf("console: failed to read log file %s: %w", logPath, err)
	}

	name := fmt.Sprintf("delivery_logs_export_%s.txt", time.Now().Format("20060102_150405"))
	exportPath := filepath.Join(filepath.Dir(logPath), name)
	if err := os.WriteFile(exportPath, data, 0o644); err != nil {
		return "", fmt.Errorf("console: failed to write export file %s: %w", exportPath, err)
	}

	return exportPath, nil
}
