package console_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-service/internal/console"
	"delivery-service/internal/order"
)

func TestParseOrderForm(t *testing.T) {
	tests := []struct {
		name      string
		customer  string
		product   string
		quantity  string
		price     string
		date      string
		wantErrIs error
	}{
		{
			name:     "valid",
			customer: "Иван Петров",
			product:  "Молоко",
			quantity: "2",
			price:    "50.5",
			date:     "2025-12-01",
		},
		{
			name:     "trims_whitespace",
			customer: "  Иван  ",
			product:  " Молоко ",
			quantity: " 2 ",
			price:    " 50 ",
			date:     " 2025-12-01 ",
		},
		{
			name:      "empty_customer",
			customer:  "   ",
			product:   "Молоко",
			quantity:  "2",
			price:     "50",
			date:      "2025-12-01",
			wantErrIs: console.ErrEmptyCustomer,
		},
		{
			name:      "empty_product",
			customer:  "Иван",
			product:   "",
			quantity:  "2",
			price:     "50",
			date:      "2025-12-01",
			wantErrIs: console.ErrEmptyProduct,
		},
		{
			name:      "non_numeric_quantity",
			customer:  "Иван",
			product:   "Молоко",
			quantity:  "two",
			price:     "50",
			date:      "2025-12-01",
			wantErrIs: console.ErrInvalidQuantity,
		},
		{
			name:      "zero_quantity",
			customer:  "Иван",
			product:   "Молоко",
			quantity:  "0",
			price:     "50",
			date:      "2025-12-01",
			wantErrIs: console.ErrInvalidQuantity,
		},
		{
			name:      "negative_price",
			customer:  "Иван",
			product:   "Молоко",
			quantity:  "2",
			price:     "-50",
			date:      "2025-12-01",
			wantErrIs: console.ErrInvalidPrice,
		},
		{
			name:      "bad_date",
			customer:  "Иван",
			product:   "Молоко",
			quantity:  "2",
			price:     "50",
			date:      "01.12.2025",
			wantErrIs: console.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := console.ParseOrderForm(tt.customer, tt.product, tt.quantity, tt.price, tt.date)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "2025-12-01", o.DeliveryDate)
			assert.NotEmpty(t, o.CustomerName)
			assert.NotEmpty(t, o.Product)
			assert.Positive(t, o.Quantity)
			assert.Positive(t, o.Price)
		})
	}
}

func TestRenderOrders(t *testing.T) {
	var buf bytes.Buffer
	console.RenderOrders(&buf, []order.Order{
		{ID: 1, CustomerName: "Иван", Product: "Молоко", Quantity: 2, Price: 50, DeliveryDate: "2025-12-01", Status: order.StatusProcessing},
	})

	out := buf.String()
	assert.Contains(t, out, "Иван")
	assert.Contains(t, out, "Молоко")
	assert.Contains(t, out, "100.00")
}

func TestRenderOrders_Empty(t *testing.T) {
	var buf bytes.Buffer
	console.RenderOrders(&buf, nil)
	assert.Contains(t, buf.String(), "no orders yet")
}

func TestRenderRevenue_Empty(t *testing.T) {
	var buf bytes.Buffer
	console.RenderRevenue(&buf, nil)
	assert.Contains(t, buf.String(), "no revenue data")
}

func TestRenderGeneralStats(t *testing.T) {
	var buf bytes.Buffer
	console.RenderGeneralStats(&buf, order.GeneralStats{
		TotalOrders:       2,
		TotalRevenue:      130,
		AverageOrderValue: 65,
	})

	out := buf.String()
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "130.00")
	assert.Contains(t, out, "65.00")
}

func TestExportLogs(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "delivery_activity.log")
	require.NoError(t, os.WriteFile(logPath, []byte("line one\nline two\n"), 0o644))

	exportPath, err := console.ExportLogs(logPath)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(exportPath), "export lands next to the log")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(data))
}

func TestExportLogs_MissingFile(t *testing.T) {
	_, err := console.ExportLogs(filepath.Join(t.TempDir(), "nope.log"))
	assert.Error(t, err)
}
