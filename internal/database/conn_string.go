package database

import (
	"net/url"
	"strconv"

	"github.com/rickgao/merchant-guide/internal/config"
)

// ApplicationName identifies transcript connections in pg_stat_activity.
const ApplicationName = "merchant"

// BuildConnString builds a PostgreSQL URL for the transcript database.
func BuildConnString(cfg config.DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = config.DefaultDBSSLMode
	}

	q := url.Values{}
	q.Set("application_name", ApplicationName)
	q.Set("sslmode", sslMode)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}
