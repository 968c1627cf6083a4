package holidays

import (
	"context"
	"fmt"
	"time"

	"github.com/richxcame/transport-backend/pkg/httpclient"
)

// PublicHoliday is a single entry from the Nager.Date feed
type PublicHoliday struct {
	Date      string `json:"date"` // YYYY-MM-DD
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// NagerClient fetches public holidays from the Nager.Date API
type NagerClient struct {
	client *httpclient.Client
}

// NewNagerClient creates a Nager.Date client
func NewNagerClient(baseURL string, timeout time.Duration) *NagerClient {
	return &NagerClient{client: httpclient.NewClient(baseURL, timeout)}
}

// PublicHolidays fetches the public holidays for a year and country code
func (n *NagerClient) PublicHolidays(ctx context.Context, year int, countryCode string) ([]PublicHoliday, error) {
	var out []PublicHoliday
	path := fmt.Sprintf("/PublicHolidays/%d/%s", year, countryCode)
	if err := n.client.GetJSON(ctx, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch public holidays: %w", err)
	}
	return out, nil
}
