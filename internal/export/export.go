// Package export writes stock reports and stores gzipped snapshots of them.
package export

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"inventory-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// Sink stores snapshot files.
type Sink interface {
	// Put writes body under key and returns where it was stored.
	Put(ctx context.Context, key string, body []byte) (string, error)
}

var reportHeader = []string{"id", "name", "category", "quantity", "price", "value"}

// WriteCSV writes one row per product followed by a total row.
func WriteCSV(w io.Writer, products []model.Product, total decimal.Decimal) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, p := range products {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.CategoryName,
			strconv.Itoa(p.Quantity),
			p.Price.StringFixed(2),
			p.Value().StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write report row for product %d: %w", p.ID, err)
		}
	}

	if err := cw.Write([]string{"", "total", "", "", "", total.StringFixed(2)}); err != nil {
		return fmt.Errorf("failed to write report total: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}

	return nil
}

// GzipCSV renders the report and compresses it.
func GzipCSV(products []model.Product, total decimal.Decimal) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)

	if err := WriteCSV(gz, products, total); err != nil {
		return nil, err
	}

	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress report: %w", err)
	}

	return buf.Bytes(), nil
}

// SnapshotKey names a snapshot taken at t.
func SnapshotKey(t time.Time) string {
	return "inventory-" + t.UTC().Format("20060102T150405Z") + ".csv.gz"
}
