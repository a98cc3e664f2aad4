package middleware

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/csrf"
	"github.com/hertz-contrib/sessions"
	"github.com/hertz-contrib/sessions/cookie"

	"AttendSheet/config"
)

// SessionMiddleware 浏览器会话，CSRF 校验依赖它先注册
func SessionMiddleware() app.HandlerFunc {
	store := cookie.NewStore([]byte(config.Cfg.SessionSecret))
	return sessions.New("attendsheet-session", store)
}

func CSRFMiddleware() app.HandlerFunc {
	return csrf.New(
		csrf.WithSecret(config.Cfg.CSRFSecret),
		csrf.WithKeyLookUp("header:X-CSRF-Token"),
		csrf.WithErrorFunc(func(ctx context.Context, c *app.RequestContext) {
			c.AbortWithStatus(http.StatusForbidden)
		}),
	)
}
