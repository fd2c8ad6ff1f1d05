package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"jurisnote/models"
	"jurisnote/storage"
)

// ExportSheet is the worksheet name of exported workbooks.
const ExportSheet = "판례노트"

// ErrArchiveDisabled is returned when no archive storage is configured.
var ErrArchiveDisabled = errors.New("export archive is not configured")

// ExportService writes the notebook out as an XLSX workbook.
type ExportService struct {
	notebook *Notebook
	archive  storage.Storage
	logger   *slog.Logger
}

// NewExportService creates an export service. archive may be nil.
func NewExportService(notebook *Notebook, archive storage.Storage, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{notebook: notebook, archive: archive, logger: logger}
}

// ExportResult is an exported workbook.
type ExportResult struct {
	Filename string
	Rows     int
	Data     []byte
}

// ArchiveResult describes an archived export.
type ArchiveResult struct {
	ExportID    uuid.UUID `json:"export_id"`
	StoragePath string    `json:"storage_path"`
	Rows        int       `json:"rows"`
}

// Workbook exports the rows matching req, using the store's own header.
func (s *ExportService) Workbook(ctx context.Context, req BrowseRequest) (*ExportResult, error) {
	start := time.Now()
	table, err := s.notebook.Table(ctx)
	if err != nil {
		return nil, err
	}
	rows := FilterRows(s.notebook.Layout(), table.Rows, req.Category, req.Query)

	data, err := writeWorkbook(table.Columns, rows)
	if err != nil {
		return nil, err
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &ExportResult{
		Filename: fmt.Sprintf("jurisnote-%s.xlsx", time.Now().Format("20060102")),
		Rows:     len(rows),
		Data:     data,
	}, nil
}

// Archive exports the rows matching req and stores the workbook.
func (s *ExportService) Archive(ctx context.Context, req BrowseRequest) (*ArchiveResult, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	res, err := s.Workbook(ctx, req)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	p, err := s.archive.Upload(ctx, id, res.Filename, bytes.NewReader(res.Data))
	if err != nil {
		return nil, fmt.Errorf("archive export: %w", err)
	}
	s.logger.Info("export archived", "export_id", id, "path", p, "rows", res.Rows)
	return &ArchiveResult{ExportID: id, StoragePath: p, Rows: res.Rows}, nil
}

func writeWorkbook(columns []string, rows []models.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return nil, err
	}

	for i, h := range columns {
		if err := setCell(f, i+1, 1, h); err != nil {
			return nil, err
		}
	}
	for r, row := range rows {
		for c, name := range columns {
			if err := setCell(f, c+1, r+2, row.Get(name)); err != nil {
				return nil, err
			}
		}
	}

	if len(columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(columns))
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(ExportSheet, "A", last, 24); err != nil {
			return nil, fmt.Errorf("xlsx column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// setCell writes value as a string so case numbers and dates stay verbatim.
func setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("xlsx cell: %w", err)
	}
	if err := f.SetCellStr(ExportSheet, cell, value); err != nil {
		return fmt.Errorf("xlsx set %s: %w", cell, err)
	}
	return nil
}
