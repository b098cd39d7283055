// Package upstream contains adapters for the upstream commerce platform.
//
// ShopifyAdapter implements the integration.OrderReader port against the
// Shopify REST Admin API. Responses are normalized into the integration
// domain types so the rest of the system never sees Shopify payloads.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/tailorbase/backend/internal/domain/integration"
)

// maxShopifyResponseSize limits the response body size to prevent memory
// exhaustion on a misbehaving upstream
const maxShopifyResponseSize = 10 * 1024 * 1024 // 10MB max response

// linkNextPattern extracts the page_info cursor from the rel="next" entry of
// a Link response header
var linkNextPattern = regexp.MustCompile(`<[^>]*[?&]page_info=([^&>]+)[^>]*>;\s*rel="next"`)

// ShopifyAdapter implements integration.OrderReader for the Shopify REST
// Admin API
type ShopifyAdapter struct {
	config     *ShopifyConfig
	httpClient *http.Client
}

// NewShopifyAdapter creates a new Shopify adapter with the given configuration
func NewShopifyAdapter(config *ShopifyConfig) (*ShopifyAdapter, error) {
	if config == nil {
		return nil, integration.ErrPlatformNotConfigured
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &ShopifyAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// GetOrder retrieves a single order from Shopify
func (a *ShopifyAdapter) GetOrder(ctx context.Context, orderID string) (*integration.UpstreamOrder, error) {
	if orderID == "" {
		return nil, integration.ErrOrderNotFound
	}

	path := fmt.Sprintf("/orders/%s.json", url.PathEscape(orderID))
	body, _, err := a.doRequest(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var resp ShopifyOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
	}
	if resp.Order == nil {
		return nil, integration.ErrOrderNotFound
	}

	order := convertShopifyOrder(resp.Order)
	return &order, nil
}

// ListOrders retrieves a page of orders, newest first. An empty cursor
// starts from the newest order; the returned cursor is the Shopify
// page_info token for the next page, empty when exhausted.
func (a *ShopifyAdapter) ListOrders(ctx context.Context, cursor string, pageSize int) (*integration.OrderPage, error) {
	if pageSize <= 0 {
		pageSize = a.config.PageSize
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(pageSize))
	query.Set("status", "any")
	if cursor != "" {
		// page_info requests reject any filter other than limit
		query = url.Values{}
		query.Set("limit", strconv.Itoa(pageSize))
		query.Set("page_info", cursor)
	}

	body, header, err := a.doRequest(ctx, "/orders.json", query)
	if err != nil {
		return nil, err
	}

	var resp ShopifyOrderListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
	}

	page := &integration.OrderPage{
		Orders:     make([]integration.UpstreamOrder, 0, len(resp.Orders)),
		NextCursor: nextPageCursor(header.Get("Link")),
	}
	for i := range resp.Orders {
		page.Orders = append(page.Orders, convertShopifyOrder(&resp.Orders[i]))
	}
	return page, nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// doRequest performs a GET request against the Admin API and returns the
// body and response headers
func (a *ShopifyAdapter) doRequest(ctx context.Context, path string, query url.Values) ([]byte, http.Header, error) {
	endpoint := fmt.Sprintf("%s/admin/api/%s%s", a.config.BaseURL, a.config.APIVersion, path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", a.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", integration.ErrPlatformRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxShopifyResponseSize))
	if err != nil {
		return nil, nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil, integration.ErrOrderNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, nil, integration.ErrPlatformRateLimited
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, nil, fmt.Errorf("%w: HTTP %d", integration.ErrPlatformNotConfigured, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, nil, fmt.Errorf("%w: HTTP %d", integration.ErrPlatformRequestFailed, resp.StatusCode)
	}

	return body, resp.Header, nil
}

// nextPageCursor extracts the next-page cursor from a Link header
func nextPageCursor(link string) string {
	if link == "" {
		return ""
	}
	match := linkNextPattern.FindStringSubmatch(link)
	if match == nil {
		return ""
	}
	return match[1]
}

// convertShopifyOrder converts a Shopify order payload to the normalized
// domain snapshot
func convertShopifyOrder(order *ShopifyOrder) integration.UpstreamOrder {
	upstream := integration.UpstreamOrder{
		ID:         strconv.FormatInt(order.ID, 10),
		Name:       order.Name,
		Email:      order.Email,
		CreatedAt:  order.CreatedAt,
		StatusTag:  order.statusTag(),
		TotalPrice: parsePrice(order.TotalPrice),
		Lines:      make([]integration.UpstreamCartLine, 0, len(order.LineItems)),
	}

	if order.Customer != nil {
		upstream.CustomerID = strconv.FormatInt(order.Customer.ID, 10)
		if upstream.Email == "" {
			upstream.Email = order.Customer.Email
		}
	}

	if addr := order.ShippingAddress; addr != nil {
		upstream.ShippingAddress = integration.UpstreamAddress{
			Name:     addr.Name,
			Address1: addr.Address1,
			Zip:      addr.Zip,
			Country:  addr.Country,
			Province: addr.Province,
			Phone:    addr.Phone,
		}
	}

	for _, item := range order.LineItems {
		bag := propertyBag(item.Properties)
		line := integration.UpstreamCartLine{
			VariantID:  strconv.FormatInt(item.VariantID, 10),
			Title:      item.Title,
			Quantity:   item.Quantity,
			Price:      parsePrice(item.Price),
			Properties: bag,
		}
		if image, ok := bag.Lookup("image"); ok {
			line.Image = image
		}
		upstream.Lines = append(upstream.Lines, line)
	}

	return upstream
}

// interface guard
var _ integration.OrderReader = (*ShopifyAdapter)(nil)
