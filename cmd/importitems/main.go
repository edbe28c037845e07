// importitems carga items masivamente desde un CSV exportado de Excel.
// Los exports de Excel en Windows suelen venir en Windows-1252; con -latin1 el
// archivo se transcodifica a UTF-8 al leerlo.
//
// Columnas esperadas (con encabezado):
//
//	item_no,company_name,name,piece_type,office,qty,quantity_sold,exit_date
//
// Uso: go run ./cmd/importitems [-latin1] inventario.csv
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/pkg/config"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en Windows-1252 (export de Excel)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: importitems [-latin1] <archivo.csv>")
		os.Exit(2)
	}
	csvPath := flag.Arg(0)

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var reader io.Reader = f
	if *latin1 {
		reader = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	repo := postgres.NewItemRepository(pool)

	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	// Encabezado
	if _, err := r.Read(); err != nil {
		fmt.Fprintf(os.Stderr, "leer encabezado: %v\n", err)
		os.Exit(1)
	}

	imported, skipped := 0, 0
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "línea %d: %v\n", line, err)
			os.Exit(1)
		}
		item, err := parseRecord(record)
		if err != nil {
			fmt.Fprintf(os.Stderr, "línea %d omitida: %v\n", line, err)
			skipped++
			continue
		}
		if err := repo.Create(ctx, item); err != nil {
			fmt.Fprintf(os.Stderr, "línea %d: insertar: %v\n", line, err)
			os.Exit(1)
		}
		imported++
	}

	fmt.Printf("Importados %d items (%d omitidos) desde %s\n", imported, skipped, csvPath)
}

// parseRecord valida una fila y la convierte en entidad, derivando remaining_qty.
func parseRecord(record []string) (*entity.Item, error) {
	if len(record) < 8 {
		return nil, fmt.Errorf("se esperan 8 columnas, hay %d", len(record))
	}
	get := func(i int) string { return strings.TrimSpace(record[i]) }

	companyName, name, pieceType, office := get(1), get(2), get(3), get(4)
	if companyName == "" || name == "" || pieceType == "" || office == "" {
		return nil, fmt.Errorf("company_name, name, piece_type y office son requeridos")
	}
	qty, err := strconv.Atoi(get(5))
	if err != nil || qty < 0 {
		return nil, fmt.Errorf("qty inválido: %q", get(5))
	}
	sold := 0
	if s := get(6); s != "" {
		sold, err = strconv.Atoi(s)
		if err != nil || sold < 0 {
			return nil, fmt.Errorf("quantity_sold inválido: %q", s)
		}
	}
	var exitDate *time.Time
	if s := get(7); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("exit_date inválido: %q", s)
		}
		exitDate = &t
	}

	item := &entity.Item{
		ID:           uuid.New().String(),
		ItemNo:       get(0),
		CompanyName:  companyName,
		Name:         name,
		PieceType:    pieceType,
		Office:       office,
		Qty:          qty,
		QuantitySold: sold,
		ExitDate:     exitDate,
		CreatedAt:    time.Now(),
	}
	item.ComputeRemaining()
	return item, nil
}
