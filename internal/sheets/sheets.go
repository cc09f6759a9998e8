// Package sheets reads the card catalog and banlist from the published
// Google Sheets spreadsheet through the Sheets v4 values API.
package sheets

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/youruser/talingdeck/internal/cards"
	"github.com/youruser/talingdeck/internal/util"
)

const (
	DefaultBaseURL = "https://sheets.googleapis.com"
	CatalogRange   = "database!A:O"
	BanlistRange   = "Banlist!A2:B"
)

// catalog sheet columns; column A holds the sheet's own row id
const (
	colName = iota + 1
	colRuleName
	colType
	colSymbol
	colCost
	colCColor
	colGem
	colGColor
	colPower
	colEx
	colRare
	colImage
	colRestrictionType
	colGroupID
)

type Client struct {
	BaseURL string
	APIKey  string
	SheetID string
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewClient(baseURL, apiKey, sheetID string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		SheetID: sheetID,
		Timeout: timeout,
		Logger:  logger,
	}
}

func (c *Client) FetchCatalog(ctx context.Context) ([]cards.Card, error) {
	rows, err := c.values(ctx, CatalogRange)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []cards.Card{}, nil
	}
	out := make([]cards.Card, 0, len(rows)-1)
	// first row is the header
	for _, row := range rows[1:] {
		get := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		card := cards.Card{
			Name:     get(colName),
			RuleName: get(colRuleName),
			Type:     get(colType),
			Symbol:   get(colSymbol),
			Cost:     get(colCost),
			CColor:   get(colCColor),
			Gem:      get(colGem),
			GColor:   get(colGColor),
			Power:    get(colPower),
			Ex:       get(colEx),
			Rare:     get(colRare),
			Image:    get(colImage),
			Group:    cards.ParseGroup(get(colRestrictionType), get(colGroupID)),
		}
		if card.RuleName == "" {
			continue
		}
		if card.Name == "" {
			card.Name = card.RuleName
		}
		out = append(out, card)
	}
	c.Logger.Info("fetched catalog from sheets", zap.Int("cards", len(out)))
	return out, nil
}

func (c *Client) FetchBanlist(ctx context.Context) (cards.Banlist, error) {
	rows, err := c.values(ctx, BanlistRange)
	if err != nil {
		return nil, err
	}
	out := cards.Banlist{}
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		copies := ""
		if len(row) > 1 {
			copies = row[1]
		}
		out[strings.TrimSpace(row[0])] = cards.ParseAllowedCopies(copies)
	}
	c.Logger.Info("fetched banlist from sheets", zap.Int("entries", len(out)))
	return out, nil
}

func (c *Client) valuesURL(rng string) string {
	q := url.Values{}
	q.Set("key", c.APIKey)
	return fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?%s",
		c.BaseURL, url.PathEscape(c.SheetID), url.PathEscape(rng), q.Encode())
}

func (c *Client) values(ctx context.Context, rng string) ([][]string, error) {
	if c.SheetID == "" {
		return nil, errors.Wrap(cards.ErrUnavailable, "sheet id not configured")
	}
	body, err := util.GetBytes(ctx, c.valuesURL(rng), c.Timeout)
	if err != nil {
		return nil, errors.Wrapf(cards.ErrUnavailable, "fetch %s: %v", rng, err)
	}
	rows, err := DecodeValues(body)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", rng)
	}
	return rows, nil
}

// DecodeValues extracts the values grid from a Sheets ValueRange response.
// A response without values is an empty sheet. Non-string cells are
// formatted with %v.
func DecodeValues(body []byte) ([][]string, error) {
	js, err := simplejson.NewJson(body)
	if err != nil {
		return nil, errors.Wrap(err, "parse response")
	}
	if msg, err := js.GetPath("error", "message").String(); err == nil {
		return nil, errors.Errorf("sheets api: %s", msg)
	}
	raw, ok := js.CheckGet("values")
	if !ok {
		return [][]string{}, nil
	}
	rows, err := raw.Array()
	if err != nil {
		return nil, errors.Wrap(err, "values is not an array")
	}
	out := make([][]string, 0, len(rows))
	for i := range rows {
		cells := raw.GetIndex(i).MustArray()
		row := make([]string, len(cells))
		for j, cell := range cells {
			switch v := cell.(type) {
			case string:
				row[j] = v
			case nil:
			default:
				row[j] = fmt.Sprintf("%v", v)
			}
		}
		out = append(out, row)
	}
	return out, nil
}
