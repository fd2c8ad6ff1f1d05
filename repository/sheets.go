package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"jurisnote/models"
)

// SheetsConfig locates the spreadsheet that backs the notebook.
type SheetsConfig struct {
	SpreadsheetID string
	// SheetName selects a tab; empty means the first sheet.
	SheetName string
	// CredentialsJSON is a service-account key. Empty skips credential
	// setup so callers can pass their own client options.
	CredentialsJSON []byte
}

// SheetsStore appends case notes as rows of a Google spreadsheet.
type SheetsStore struct {
	svc    *sheets.Service
	cfg    SheetsConfig
	layout models.Layout

	mu            sync.Mutex
	headerChecked bool
}

// NewSheetsStore authenticates and verifies the spreadsheet is reachable.
func NewSheetsStore(ctx context.Context, cfg SheetsConfig, layout models.Layout, opts ...option.ClientOption) (*SheetsStore, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}

	var clientOpts []option.ClientOption
	if len(cfg.CredentialsJSON) > 0 {
		creds, err := normalizeServiceAccount(cfg.CredentialsJSON)
		if err != nil {
			return nil, err
		}
		clientOpts = append(clientOpts,
			option.WithCredentialsJSON(creds),
			option.WithScopes(sheets.SpreadsheetsScope),
		)
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	if _, err := svc.Spreadsheets.Get(cfg.SpreadsheetID).Fields("spreadsheetId").Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", cfg.SpreadsheetID, err)
	}

	return &SheetsStore{svc: svc, cfg: cfg, layout: layout}, nil
}

// normalizeServiceAccount turns literal "\n" sequences in the private key
// into newlines. Keys pasted into env vars usually arrive double-escaped.
func normalizeServiceAccount(raw []byte) ([]byte, error) {
	var creds map[string]any
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("parse service account json: %w", err)
	}
	if key, ok := creds["private_key"].(string); ok {
		creds["private_key"] = strings.ReplaceAll(key, `\n`, "\n")
	}
	return json.Marshal(creds)
}

// a1 prefixes a range with the quoted sheet name when one is configured.
func (s *SheetsStore) a1(rng string) string {
	if s.cfg.SheetName == "" {
		return rng
	}
	return "'" + strings.ReplaceAll(s.cfg.SheetName, "'", "''") + "'!" + rng
}

// EnsureSchema writes the header row into an empty sheet.
func (s *SheetsStore) EnsureSchema(ctx context.Context) error {
	return s.ensureHeader(ctx)
}

// ensureHeader writes the layout header into an empty sheet, or checks the
// existing one. The result is remembered for the life of the store.
func (s *SheetsStore) ensureHeader(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.headerChecked {
		return nil
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, s.a1("1:1")).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		header := &sheets.ValueRange{Values: [][]any{toCells(s.layout.Columns)}}
		_, err := s.svc.Spreadsheets.Values.Update(s.cfg.SpreadsheetID, s.a1("A1"), header).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	} else if err := s.layout.CheckHeader(toStrings(resp.Values[0])); err != nil {
		return fmt.Errorf("%w: %v", ErrHeaderMismatch, err)
	}

	s.headerChecked = true
	return nil
}

// Append adds one row after the last non-empty row. Values are written raw
// so dates and case numbers are not reinterpreted by the spreadsheet.
func (s *SheetsStore) Append(ctx context.Context, rec models.Record) error {
	values, err := checkRecord(s.layout, rec)
	if err != nil {
		return err
	}
	if err := s.ensureHeader(ctx); err != nil {
		return err
	}

	body := &sheets.ValueRange{Values: [][]any{toCells(values)}}
	_, err = s.svc.Spreadsheets.Values.Append(s.cfg.SpreadsheetID, s.a1("A1"), body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

// FetchAll reads the whole sheet. The first row is the header.
func (s *SheetsStore) FetchAll(ctx context.Context) (*models.Table, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, s.a1("A:Z")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(resp.Values) == 0 {
		return models.NewTable(s.layout.Columns, nil), nil
	}

	header := toStrings(resp.Values[0])
	cells := make([][]string, 0, len(resp.Values)-1)
	for _, r := range resp.Values[1:] {
		cells = append(cells, toStrings(r))
	}
	return models.NewTable(header, cells), nil
}

// Close is a no-op; the HTTP client has nothing to release.
func (s *SheetsStore) Close() error {
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func toStrings(cells []any) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if c == nil {
			continue
		}
		out[i] = fmt.Sprint(c)
	}
	return out
}
