package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DatasetFiles maps dataset file names to raw CSV content.
type DatasetFiles map[string]string

// DefaultDataset returns a small coherent six-table dataset: two delivered
// orders and one shipped order across 2017-2018, with products, customers,
// reviews and payments that join to them.
func DefaultDataset() DatasetFiles {
	return DatasetFiles{
		"orders_dataset.csv": "order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date\n" +
			"o1,c1,delivered,2017-05-01 10:00:00,2017-05-01 11:00:00,2017-05-02 08:00:00,2017-05-04 14:00:00,2017-05-10 00:00:00\n" +
			"o2,c2,delivered,2018-01-15 09:30:00,2018-01-15 10:00:00,2018-01-16 08:00:00,2018-01-23 16:00:00,2018-01-30 00:00:00\n" +
			"o3,c1,shipped,2018-02-01 12:00:00,2018-02-01 12:30:00,2018-02-02 09:00:00,,2018-02-15 00:00:00\n",
		"order_items_dataset.csv": "order_id,order_item_id,product_id,price\n" +
			"o1,1,p1,50.00\n" +
			"o1,2,p2,30.00\n" +
			"o2,1,p1,120.50\n" +
			"o3,1,p2,10.00\n",
		"products_dataset.csv": "product_id,product_category_name\n" +
			"p1,toys\n" +
			"p2,books\n",
		"customers_dataset.csv": "customer_id,customer_state\n" +
			"c1,SP\n" +
			"c2,RJ\n",
		"order_reviews_dataset.csv": "review_id,order_id,review_score\n" +
			"r1,o1,5\n" +
			"r2,o2,3\n",
		"order_payments_dataset.csv": "order_id,payment_type,payment_value\n" +
			"o1,credit_card,80.00\n" +
			"o2,boleto,120.50\n",
	}
}

// WriteDataset writes the files into a fresh temp directory and returns its
// path. The directory is cleaned up when the test finishes.
func WriteDataset(t *testing.T, files DatasetFiles) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	return dir
}
