// Package importer loads member records from the membership spreadsheet.
//
// Sheet layout: row 1 is a header. Column A holds the name, B and C the tier
// letter and number that together form the member id, D the car. A gray row
// marks an inactive member, a yellow row a member whose payment is not valid.
package importer

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/logger"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// Columns A-D
const (
	colName = iota + 1
	colTier
	colNumber
	colCar
)

// CreateFunc creates one member. It matches store.Gateway.Create and member.MemberCache.CreateMember.
type CreateFunc func(ctx context.Context, id, name, car string, isActive, validPayment bool, notes string) (string, error)

// Result is the aggregate import report. Total == Successful + Failed.
type Result struct {
	Total      int        `json:"total"`
	Successful int        `json:"successful"`
	Failed     int        `json:"failed"`
	Errors     []RowError `json:"errors"`
}

// RowError is a per-row failure. It never aborts the batch.
type RowError struct {
	Row   int    `json:"row"` // 1-based sheet row
	Error string `json:"error"`
}

// Record is a parsed sheet row
type Record struct {
	Row          int
	ID           string
	Name         string
	Car          string
	IsActive     bool
	ValidPayment bool
}

type Engine struct {
	maxConcurrency int
}

// NewEngine creates an import engine. maxConcurrency <= 0 runs every row at once.
func NewEngine(maxConcurrency int) *Engine {
	return &Engine{
		maxConcurrency: maxConcurrency,
	}
}

// ImportRecords parses the first worksheet of r and calls create for every row concurrently.
// A row failure is recorded in the report; only workbook level failures return an error.
func (e *Engine) ImportRecords(ctx context.Context, r io.Reader, create CreateFunc) (*Result, error) {
	log := logger.FromContext(ctx)

	records, err := ParseWorkbook(r)
	if err != nil {
		log.Error("엑셀 파일 읽기 실패", "error", err)
		return nil, err
	}

	result := &Result{Errors: []RowError{}}
	var mu sync.Mutex
	fail := func(row int, msg string) {
		mu.Lock()
		defer mu.Unlock()
		result.Failed++
		result.Errors = append(result.Errors, RowError{Row: row, Error: msg})
	}

	var g errgroup.Group
	if e.maxConcurrency > 0 {
		g.SetLimit(e.maxConcurrency)
	}

	for _, rec := range records {
		mu.Lock()
		result.Total++
		mu.Unlock()

		if rec.ID == "" {
			log.Warn("ID가 없는 행을 건너뜁니다", "row", rec.Row)
			fail(rec.Row, missingIDMessage)
			continue
		}

		rec := rec
		g.Go(func() error {
			if _, err := create(ctx, rec.ID, rec.Name, rec.Car, rec.IsActive, rec.ValidPayment, ""); err != nil {
				log.Error("회원 생성 실패", "row", rec.Row, "id", rec.ID, "error", err)
				fail(rec.Row, err.Error())
				return nil
			}

			mu.Lock()
			result.Successful++
			mu.Unlock()
			return nil
		})
	}

	// Row goroutines never return errors; failures live in the report
	_ = g.Wait()

	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Row < result.Errors[j].Row
	})

	log.Info("엑셀 업로드 완료",
		"total", result.Total,
		"successful", result.Successful,
		"failed", result.Failed,
	)
	return result, nil
}

// ParseWorkbook reads the member rows of the first worksheet. Blank rows are skipped.
func ParseWorkbook(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w: %w", ErrUnreadableWorkbook, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no worksheet found in the excel file: %w", ErrUnreadableWorkbook)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w: %w", sheet, ErrUnreadableWorkbook, err)
	}

	p := &sheetParser{file: f, sheet: sheet, fills: make(map[int]rowFill)}

	var records []Record
	for i, cells := range rows {
		rowNumber := i + 1
		if rowNumber == 1 || isBlank(cells) {
			continue
		}

		fill, err := p.rowFill(rowNumber)
		if err != nil {
			return nil, fmt.Errorf("read styles of row %d: %w: %w", rowNumber, ErrUnreadableWorkbook, err)
		}

		records = append(records, Record{
			Row:          rowNumber,
			ID:           cell(cells, colTier) + cell(cells, colNumber),
			Name:         cell(cells, colName),
			Car:          cell(cells, colCar),
			IsActive:     !fill.gray,
			ValidPayment: !fill.yellow,
		})
	}

	return records, nil
}

type sheetParser struct {
	file  *excelize.File
	sheet string
	fills map[int]rowFill // by style index
}

// rowFill reports gray/yellow if any of the cells A-D carries that fill
func (p *sheetParser) rowFill(row int) (rowFill, error) {
	var fill rowFill
	for col := colName; col <= colCar; col++ {
		name, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return fill, err
		}
		styleID, err := p.file.GetCellStyle(p.sheet, name)
		if err != nil {
			return fill, err
		}
		cf := p.styleFill(styleID)
		fill.gray = fill.gray || cf.gray
		fill.yellow = fill.yellow || cf.yellow
	}
	return fill, nil
}

// styleFill classifies the fill of a cell style. Unknown style indexes carry no fill.
func (p *sheetParser) styleFill(styleID int) rowFill {
	if cached, ok := p.fills[styleID]; ok {
		return cached
	}

	var fill rowFill
	if color, ok := rawFill(p.file, styleID); ok {
		fill = classify(color)
	}
	p.fills[styleID] = fill
	return fill
}

// cell returns the trimmed value of 1-based column col
func cell(cells []string, col int) string {
	if col > len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col-1])
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
