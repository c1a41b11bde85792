package handlers

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// absoluteURL builds scheme://host/path?query for the current request.
func absoluteURL(c *gin.Context, path string, query url.Values) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: path}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// pageURL keeps the current filters and swaps the page parameter.
// Page 1 is linked without a page parameter.
func pageURL(c *gin.Context, page int) string {
	query := c.Request.URL.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}
	return absoluteURL(c, c.Request.URL.Path, query)
}

// relativePageURL is pageURL without scheme and host, for HTML links.
func relativePageURL(c *gin.Context, page int) string {
	query := c.Request.URL.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}
	u := url.URL{Path: c.Request.URL.Path, RawQuery: query.Encode()}
	return u.String()
}
