// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// secureHeaderSet is applied to every response before the handler runs.
var secureHeaderSet = map[string]string{
	// Forbid MIME-sniffing of the Content-Type.
	"X-Content-Type-Options": "nosniff",
	// Only same-origin pages may embed us in a frame.
	"X-Frame-Options": "SAMEORIGIN",
	// The legacy XSS auditor is off; it does more harm than good.
	"X-XSS-Protection": "0",
	"Referrer-Policy":  "strict-origin-when-cross-origin",
	// Opt out of FLoC cohort calculation.
	"Permissions-Policy": "interest-cohort=()",
}

// SecureHeaders sets a baseline of browser security headers on all responses.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for name, value := range secureHeaderSet {
			h.Set(name, value)
		}
		next.ServeHTTP(w, r)
	})
}
