// Package pricing — выгрузка коллекции в Excel и массовая загрузка цен из него.
package pricing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/empresa-pos/internal/optimistic"
)

// Row — строка файла: id,name,unit,cost,sale_price,stock.
type Row struct {
	ID        int64
	Name      string
	Unit      string
	Cost      decimal.Decimal
	SalePrice decimal.Decimal
	Stock     decimal.Decimal
}

// Column — индекс колонки с ценой, которую читает Import.
type Column int

const (
	ColumnCost      Column = 3
	ColumnSalePrice Column = 4
)

func (c Column) String() string {
	switch c {
	case ColumnCost:
		return "cost"
	case ColumnSalePrice:
		return "sale_price"
	}
	return "column_" + strconv.Itoa(int(c))
}

var header = []interface{}{"id", "name", "unit", "cost", "sale_price", "stock"}

// Export пишет строки в xlsx в текущем порядке.
func Export(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("pricing: header: %w", err)
	}

	for i, r := range rows {
		excelRow := []interface{}{
			r.ID,
			r.Name,
			r.Unit,
			r.Cost.InexactFloat64(),
			r.SalePrice.InexactFloat64(),
			r.Stock.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("pricing: cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return fmt.Errorf("pricing: row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return fmt.Errorf("pricing: write: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Target — куда применяются цены из файла.
type Target interface {
	SetPrice(ctx context.Context, id int64, price decimal.Decimal) optimistic.Outcome
	Reload(ctx context.Context) optimistic.Outcome
}

type Summary struct {
	Rows     int // строк с id
	Updated  int
	Failures []string
	Reload   optimistic.Outcome
}

func (s Summary) Message() string {
	msg := fmt.Sprintf("Цены обновлены из файла.\nСтрок обработано: %d\nЗаписей с изменённой ценой: %d", s.Rows, s.Updated)
	if len(s.Failures) > 0 {
		msg += "\nОшибки:\n" + strings.Join(s.Failures, "\n")
	}
	return msg
}

type update struct {
	line  int
	id    int64
	price decimal.Decimal
}

// Import сначала разбирает весь файл и при любой ошибке ничего не применяет.
// Пустая ячейка цены оставляет старое значение. После применения коллекция
// перечитывается целиком.
func Import(ctx context.Context, r io.Reader, t Target, col Column) (Summary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Summary{}, fmt.Errorf("pricing: не удалось прочитать Excel-файл (повреждён или не .xlsx): %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return Summary{}, errors.New("pricing: файл не содержит данных (нет строк с ценами)")
	}
	if len(rows[0]) <= int(col) {
		return Summary{}, fmt.Errorf("pricing: некорректный формат файла: нет колонки %s", col)
	}

	var (
		sum     Summary
		updates []update
	)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}
		idStr := strings.TrimSpace(row[0])
		if idStr == "" {
			continue
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			return Summary{}, fmt.Errorf("pricing: строка %d: некорректный id (%q)", i+1, idStr)
		}
		sum.Rows++

		if len(row) <= int(col) {
			continue
		}
		priceStr := strings.TrimSpace(row[col])
		if priceStr == "" {
			continue
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(priceStr, ",", "."))
		if err != nil || price.IsNegative() {
			return Summary{}, fmt.Errorf("pricing: строка %d: некорректный %s (%q), нужно неотрицательное число", i+1, col, priceStr)
		}
		updates = append(updates, update{line: i + 1, id: id, price: price})
	}

	for _, u := range updates {
		o := t.SetPrice(ctx, u.id, u.price)
		if !o.Success {
			sum.Failures = append(sum.Failures, fmt.Sprintf("строка %d (id=%d): %s", u.line, u.id, o.Message))
			continue
		}
		sum.Updated++
	}
	sum.Reload = t.Reload(ctx)
	return sum, nil
}
