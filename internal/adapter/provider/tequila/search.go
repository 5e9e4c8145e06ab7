package tequila

import (
	"context"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/flight-search/flight-finder/internal/domain"
)

// Search runs one round-trip search and groups the offers by the destination
// city the service reports. An empty answer yields empty results.
func (c *Client) Search(ctx context.Context, params url.Values) (domain.GroupedResults, error) {
	body, err := c.get(ctx, endpointSearch, "/v2/search", params)
	if err != nil {
		return domain.GroupedResults{}, err
	}

	if !gjson.ValidBytes(body) {
		return domain.GroupedResults{}, domain.NewProviderUnavailableError(ProviderName, "malformed search response")
	}

	items := gjson.GetBytes(body, "data").Array()
	results := normalize(items, func(err error) {
		c.log.Warn().Err(err).Msg("skipping unreadable offer")
	})

	c.log.Info().
		Int("offers", len(items)).
		Int("destinations", len(results.Destinations)).
		Msg("search completed")
	return results, nil
}
