package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/daybyday/pkg"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.WithFields(log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"ua":     r.Header.Get("User-Agent"),
				"ip":     pkg.ClientIP(r),
			}).Trace(" ====> request")
			next.ServeHTTP(w, r)
		})
	}
}
