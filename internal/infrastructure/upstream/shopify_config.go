package upstream

import (
	"errors"
	"strings"
	"time"
)

// Errors for Shopify configuration
var (
	ErrShopifyConfigMissingBaseURL     = errors.New("shopify: base URL is required")
	ErrShopifyConfigMissingAccessToken = errors.New("shopify: access token is required")
)

// DefaultShopifyAPIVersion is the REST Admin API version used when the
// configuration does not pin one.
const DefaultShopifyAPIVersion = "2024-07"

// ShopifyConfig holds configuration for the Shopify REST Admin API
type ShopifyConfig struct {
	// BaseURL is the shop URL, e.g. https://example.myshopify.com
	BaseURL string
	// AccessToken is the Admin API access token for the custom app
	AccessToken string
	// APIVersion is the dated Admin API version, e.g. 2024-07
	APIVersion string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
	// PageSize is the default page size for order listings
	PageSize int
}

// NewShopifyConfig creates a new Shopify configuration with defaults
func NewShopifyConfig(baseURL, accessToken string) *ShopifyConfig {
	return &ShopifyConfig{
		BaseURL:     baseURL,
		AccessToken: accessToken,
		APIVersion:  DefaultShopifyAPIVersion,
		Timeout:     10 * time.Second,
		PageSize:    50,
	}
}

// Validate validates the Shopify configuration and fills in defaults
func (c *ShopifyConfig) Validate() error {
	if c.BaseURL == "" {
		return ErrShopifyConfigMissingBaseURL
	}
	if c.AccessToken == "" {
		return ErrShopifyConfigMissingAccessToken
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.APIVersion == "" {
		c.APIVersion = DefaultShopifyAPIVersion
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.PageSize <= 0 {
		c.PageSize = 50
	}
	return nil
}
