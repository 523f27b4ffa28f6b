// Package spreadsheet lee y escribe libros tabulares (xlsx vía excelize, csv) para la
// importación y exportación del catálogo.
package spreadsheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/MrEshunOfficial/category-api/internal/application/usecase"
	"github.com/MrEshunOfficial/category-api/internal/domain"
)

var _ usecase.TableReader = (*Reader)(nil)

// zipMagic encabezado de todo archivo OOXML (xlsx es un zip).
var zipMagic = []byte("PK\x03\x04")

// Reader implementa usecase.TableReader: xlsx/xlsm/xltx con excelize y csv con encoding/csv.
type Reader struct {
	csvCharset encoding.Encoding // nil = UTF-8
}

// ReaderOption configura el Reader.
type ReaderOption func(*Reader)

// WithCSVCharset decodifica los csv desde un charset de un byte (latin1, windows-1252).
// Los libros xlsx siempre son UTF-8 y no se ven afectados.
func WithCSVCharset(name string) (ReaderOption, error) {
	enc, err := CharsetByName(name)
	if err != nil {
		return nil, err
	}
	return func(rd *Reader) { rd.csvCharset = enc }, nil
}

// CharsetByName resuelve los nombres aceptados; "" y "utf-8" devuelven nil.
func CharsetByName(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("charset no soportado: %q", name)
	}
}

// NewReader construye el lector.
func NewReader(opts ...ReaderOption) *Reader {
	rd := &Reader{}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

// ReadTable devuelve las filas de la primera hoja. El formato se elige por extensión y,
// si no es concluyente, por la firma zip del contenido.
func (rd *Reader) ReadTable(fileName string, r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return readWorkbook(br)
	case ".csv":
		return readCSV(rd.decode(br))
	}
	head, _ := br.Peek(len(zipMagic))
	if bytes.Equal(head, zipMagic) {
		return readWorkbook(br)
	}
	return readCSV(rd.decode(br))
}

func (rd *Reader) decode(r io.Reader) io.Reader {
	if rd.csvCharset == nil {
		return r
	}
	return transform.NewReader(r, rd.csvCharset.NewDecoder())
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewValidationError("file", "no es un libro xlsx válido: "+err.Error())
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, domain.NewValidationError("file", "csv inválido: "+err.Error())
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		// BOM de UTF-8 que agregan algunas hojas de cálculo al exportar csv.
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}
