// Package catalogcsv lee catálogos de productos exportados a CSV (hojas de cálculo, sistemas
// anteriores) y los da de alta a través del caso de uso de productos.
package catalogcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/casaguflo/inventario-api/internal/application/dto"
	"github.com/casaguflo/inventario-api/internal/domain"
)

// Columnas reconocidas en la cabecera (sin distinguir mayúsculas).
const (
	colSKU            = "sku"
	colName           = "nombre"
	colPurchasePrice  = "precio_compra"
	colRetailPrice    = "precio_venta"
	colWholesalePrice = "precio_mayorista"
	colBoxPrice       = "precio_caja"
	colUnitsPerBox    = "unidades_por_caja"
)

// Options formato del archivo.
type Options struct {
	Comma  rune // separador; 0 = ','
	Latin1 bool // archivo en ISO-8859-1 (exportaciones de Excel en Windows)
}

// Row fila leída con su número de línea en el archivo.
type Row struct {
	Line    int
	Product dto.CreateProductRequest
}

// Read decodifica el CSV completo. La cabecera debe incluir sku y nombre; el resto de
// columnas es opcional. Las filas en blanco se ignoran.
func Read(r io.Reader, opts Options) ([]Row, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := indexHeader(header)
	if _, ok := idx[colSKU]; !ok {
		return nil, fmt.Errorf("%w: falta la columna %s", domain.ErrInvalidInput, colSKU)
	}
	if _, ok := idx[colName]; !ok {
		return nil, fmt.Errorf("%w: falta la columna %s", domain.ErrInvalidInput, colName)
	}

	// Con ';' como separador los decimales suelen venir con coma.
	decimalComma := cr.Comma == ';'
	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}
		p, err := parseRecord(rec, idx, decimalComma)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		rows = append(rows, Row{Line: line, Product: p})
	}
	return rows, nil
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if h != "" {
			idx[h] = i
		}
	}
	return idx
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseRecord(rec []string, idx map[string]int, decimalComma bool) (dto.CreateProductRequest, error) {
	field := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	money := func(col string) (decimal.Decimal, error) {
		s := field(col)
		if s == "" {
			return decimal.Zero, nil
		}
		if decimalComma {
			s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		}
		d, err := decimal.NewFromString(strings.TrimPrefix(s, "$"))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %s %q no es un número", domain.ErrInvalidInput, col, field(col))
		}
		return d, nil
	}

	p := dto.CreateProductRequest{SKU: field(colSKU), Name: field(colName)}
	if p.SKU == "" || p.Name == "" {
		return p, fmt.Errorf("%w: sku y nombre son obligatorios", domain.ErrInvalidInput)
	}
	var err error
	if p.PurchasePrice, err = money(colPurchasePrice); err != nil {
		return p, err
	}
	if p.RetailPrice, err = money(colRetailPrice); err != nil {
		return p, err
	}
	if p.WholesalePrice, err = money(colWholesalePrice); err != nil {
		return p, err
	}
	if p.BoxPrice, err = money(colBoxPrice); err != nil {
		return p, err
	}
	if s := field(colUnitsPerBox); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, fmt.Errorf("%w: %s %q no es un entero", domain.ErrInvalidInput, colUnitsPerBox, s)
		}
		if n > 0 {
			p.UnitsPerBox = &n
		}
	}
	return p, nil
}
