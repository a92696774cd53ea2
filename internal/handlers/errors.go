package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
)

// writeError turns a use case error into a JSON response. Anything that is
// not a business error is logged and hidden behind a 500.
func writeError(c *gin.Context, err error, fallback string) {
	code, ok := httperr.AsBusiness(err)
	if !ok {
		_ = c.Error(err)
		log.Error().Err(err).Str("route", c.FullPath()).Msg(fallback)
		httperr.Internal(c, fallback, "Internal error.")
		return
	}
	httperr.Business(c, code)
}

func invalidRequest(c *gin.Context, err error) {
	httperr.Invalid(c, err)
}
