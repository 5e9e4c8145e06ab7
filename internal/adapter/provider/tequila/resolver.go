package tequila

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/flight-search/flight-finder/internal/domain"
)

// Resolve returns the location code of the best match for name.
// Cached codes are returned without a request.
func (c *Client) Resolve(ctx context.Context, name string) (string, error) {
	if code, ok := c.cache.Get(ctx, name); ok {
		c.log.Debug().Str("location", name).Str("code", code).Msg("location cache hit")
		return code, nil
	}

	body, err := c.get(ctx, endpointLocations, "/locations/query", url.Values{"term": {name}})
	if err != nil {
		return "", err
	}

	code := gjson.GetBytes(body, "locations.0.code").String()
	if code == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrLocationNotFound, name)
	}

	if err := c.cache.Set(ctx, name, code); err != nil {
		c.log.Warn().Err(err).Str("location", name).Msg("failed to cache location code")
	}
	return code, nil
}
