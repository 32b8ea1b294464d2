package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"keepstock/infrastructure/apperr"
)

// Column headers expected in an uploaded catalog file.
const (
	ColumnSKU      = "SKU"
	ColumnRack     = "No Rak"
	ColumnName     = "Nama Barang"
	ColumnPrice    = "Harga"
	ColumnStockNew = "Stock Baru"
)

var RequiredColumns = []string{ColumnSKU, ColumnRack, ColumnName, ColumnPrice, ColumnStockNew}

// Row is one parsed catalog line, before it is bound to a branch.
type Row struct {
	SKU        string          `validate:"required"`
	RackNumber string          `validate:"required"`
	Name       string          `validate:"required"`
	Price      decimal.Decimal `validate:"gte=0"`
	StockNew   int64           `validate:"gte=0"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func rowValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
	})
	return validate
}

// ValidateRows checks every row and reports the first failure as a
// validation error naming the row.
func ValidateRows(rows []Row) error {
	v := rowValidator()
	for i, row := range rows {
		if err := v.Struct(row); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
				fe := fieldErrs[0]
				switch fe.Tag() {
				case "required":
					return validationErr("row %d: %s is required", i+1, fe.Field())
				default:
					return validationErr("row %d: %s must not be negative", i+1, fe.Field())
				}
			}
			return validationErr("row %d: %v", i+1, err)
		}
	}
	return nil
}

// ParseCSV reads a catalog file. The header row may list the required
// columns in any order and may start with a UTF-8 byte order mark. Any bad
// line rejects the whole file.
func ParseCSV(reader io.Reader) ([]Row, error) {
	decoded := transform.NewReader(reader, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	r := csv.NewReader(decoded)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, validationErr("CSV file is empty")
	}
	if err != nil {
		return nil, apperr.Format(err, "read CSV header: %v", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	missing := make([]string, 0)
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, validationErr("invalid CSV format, missing columns: %s", strings.Join(missing, ", "))
	}

	rows := make([]Row, 0)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperr.Format(err, "%v", err)
		}
		line, _ := r.FieldPos(0)
		if isBlank(record) {
			continue
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		price, err := decimal.NewFromString(field(ColumnPrice))
		if err != nil {
			return nil, apperr.Format(err, "line %d: %s %q is not a number", line, ColumnPrice, field(ColumnPrice))
		}
		stock, err := strconv.ParseInt(field(ColumnStockNew), 10, 64)
		if err != nil {
			return nil, apperr.Format(err, "line %d: %s %q is not a whole number", line, ColumnStockNew, field(ColumnStockNew))
		}

		rows = append(rows, Row{
			SKU:        field(ColumnSKU),
			RackNumber: field(ColumnRack),
			Name:       field(ColumnName),
			Price:      price,
			StockNew:   stock,
		})
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func validationErr(format string, args ...any) error {
	return apperr.Validation(format, args...)
}
