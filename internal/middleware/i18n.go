// internal/middleware/i18n.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/abinexis/homepage-admin/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	supported := i18n.GetSupportedLanguages()
	tags := []language.Tag{language.Make(i18n.DefaultLang)}
	for _, lang := range supported {
		if lang != i18n.DefaultLang {
			tags = append(tags, language.Make(lang))
		}
	}
	matcher := language.NewMatcher(tags)

	return func(c *gin.Context) {
		lang := i18n.DefaultLang

		// Handle cases like "de-CH,de;q=0.9,en;q=0.8"
		if header := c.GetHeader("Accept-Language"); header != "" {
			prefs, _, err := language.ParseAcceptLanguage(header)
			if err == nil && len(prefs) > 0 {
				_, idx, confidence := matcher.Match(prefs...)
				if confidence != language.No {
					lang = tagName(tags[idx])
				}
			}
		}

		c.Set("lang", lang)
		c.Next()
	}
}

func tagName(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
