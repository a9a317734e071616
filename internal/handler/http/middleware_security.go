package http

import (
	"net/http"

	"github.com/unrolled/secure"
)

const contentSecurityPolicy = "default-src 'self';base-uri 'self';font-src 'self' https: data:;" +
	"form-action 'self';frame-ancestors 'self';img-src 'self' data:;object-src 'none';" +
	"script-src 'self';script-src-attr 'none';style-src 'self' https: 'unsafe-inline';" +
	"upgrade-insecure-requests"

// extraSecurityHeaders are set next to the ones managed by secure.
var extraSecurityHeaders = map[string]string{
	"Cross-Origin-Opener-Policy":        "same-origin",
	"Cross-Origin-Resource-Policy":      "same-origin",
	"Origin-Agent-Cluster":              "?1",
	"X-DNS-Prefetch-Control":            "off",
	"X-Download-Options":                "noopen",
	"X-Permitted-Cross-Domain-Policies": "none",
}

func newSecureHeaders() *secure.Secure {
	return secure.New(secure.Options{
		ContentSecurityPolicy:   contentSecurityPolicy,
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		BrowserXssFilter:        true,
		CustomBrowserXssValue:   "0",
		ReferrerPolicy:          "no-referrer",
		STSSeconds:              15552000,
		STSIncludeSubdomains:    true,
		ForceSTSHeader:          true,
	})
}

func (h *Handler) securityHeaders(next http.Handler) http.Handler {
	return h.headers.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		for k, v := range extraSecurityHeaders {
			header.Set(k, v)
		}
		header.Del("X-Powered-By")

		next.ServeHTTP(w, r)
	}))
}
