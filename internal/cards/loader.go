package cards

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CSVProvider reads the catalog and banlist from CSV exports in a data directory.
// cards.csv is required; custom_cards.csv is appended when present.
// banlist.csv is optional.
type CSVProvider struct {
	DataDir string
	Logger  *zap.Logger
}

func NewCSVProvider(dataDir string, logger *zap.Logger) *CSVProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVProvider{DataDir: dataDir, Logger: logger}
}

func (p *CSVProvider) FetchCatalog(ctx context.Context) ([]Card, error) {
	return LoadCardsFromDataDir(p.DataDir)
}

func (p *CSVProvider) FetchBanlist(ctx context.Context) (Banlist, error) {
	path := filepath.Join(p.DataDir, "banlist.csv")
	if _, err := os.Stat(path); err != nil {
		p.Logger.Debug("no banlist file", zap.String("path", path))
		return Banlist{}, nil
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "open %s: %v", path, err)
	}
	defer fp.Close()
	return ReadBanlistCSV(fp)
}

// LoadCardsFromDataDir loads the catalog CSVs from a data directory.
func LoadCardsFromDataDir(dataDir string) ([]Card, error) {
	files := []string{
		filepath.Join(dataDir, "cards.csv"),
		filepath.Join(dataDir, "custom_cards.csv"),
	}

	var all []Card
	var found bool
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		found = true
		cs, err := loadSingleCSV(f)
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s", f)
		}
		all = append(all, cs...)
	}
	if !found {
		return nil, errors.Wrapf(ErrUnavailable, "no card CSVs found in %s", dataDir)
	}
	return all, nil
}

func loadSingleCSV(path string) ([]Card, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return ReadCardsCSV(fp)
}

// ReadCardsCSV decodes catalog rows keyed by header name. Rows without a rule
// name are skipped.
func ReadCardsCSV(r io.Reader) ([]Card, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, errors.New("csv has no header")
	}
	get := columnGetter(rows[0])

	out := []Card{}
	for _, row := range rows[1:] {
		c := Card{
			Name:     get(row, "Name"),
			RuleName: get(row, "RuleName"),
			Type:     get(row, "Type"),
			Symbol:   get(row, "Symbol"),
			Cost:     get(row, "Cost"),
			CColor:   get(row, "CColor"),
			Gem:      get(row, "Gem"),
			GColor:   get(row, "GColor"),
			Power:    get(row, "Power"),
			Ex:       get(row, "Ex"),
			Rare:     get(row, "Rare"),
			Image:    get(row, "Image"),
			Group:    ParseGroup(get(row, "RestrictionType"), get(row, "GroupID")),
		}
		if c.RuleName == "" {
			continue
		}
		if c.Name == "" {
			c.Name = c.RuleName
		}
		out = append(out, c)
	}
	return out, nil
}

// ReadBanlistCSV decodes RuleName,AllowedCopies rows.
func ReadBanlistCSV(r io.Reader) (Banlist, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	out := Banlist{}
	if len(rows) < 1 {
		return out, nil
	}
	get := columnGetter(rows[0])
	for _, row := range rows[1:] {
		name := get(row, "RuleName")
		if name == "" {
			continue
		}
		out[name] = ParseAllowedCopies(get(row, "AllowedCopies"))
	}
	return out, nil
}

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	return rows, nil
}

func columnGetter(header []string) func(row []string, name string) string {
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}
}
