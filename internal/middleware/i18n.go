// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/ecommerce-api/internal/i18n"
)

// I18nMiddleware picks the response language from the lang query parameter
// or the first supported Accept-Language entry.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Default()

		if q := normalizeLang(c.Query("lang")); q != "" && i18n.IsSupported(q) {
			lang = q
		} else if header := c.GetHeader("Accept-Language"); header != "" {
			// Handle cases like "fr-FR,fr;q=0.9,en;q=0.8"
			for _, part := range strings.Split(header, ",") {
				candidate := normalizeLang(strings.Split(part, ";")[0])
				if candidate != "" && i18n.IsSupported(candidate) {
					lang = candidate
					break
				}
			}
		}

		c.Set("lang", lang)
		c.Next()
	}
}

// normalizeLang reduces "fr-FR" or "fr_CA" to "fr".
func normalizeLang(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	return tag
}
