package tryonControllers

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// The studio proxies to an external ML service that dresses the uploaded
// photo in the selected garment. The service cold-starts, so failures are
// expected and surfaced as a soft "try again" rather than an error page.

func apiURL() string {
	if v := os.Getenv("TRYON_API_URL"); v != "" {
		return v
	}
	return "http://localhost:8600/tryon"
}

var httpClient = &http.Client{Timeout: 90 * time.Second}

// Handler forwards the multipart body (person photo + garment image) to the
// ML service and relays the generated image back.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request"})
			return
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, apiURL(), bytes.NewReader(body))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build request"})
			return
		}
		req.Header.Set("Content-Type", c.GetHeader("Content-Type"))

		resp, err := httpClient.Do(req)
		if err != nil {
			log.Warn().Err(err).Msg("try-on service unreachable")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "The studio is warming up, please try again in 30 seconds",
			})
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Warn().Int("status", resp.StatusCode).Msg("try-on service error")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "The studio is warming up, please try again in 30 seconds",
			})
			return
		}

		c.Header("Content-Type", resp.Header.Get("Content-Type"))
		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, resp.Body); err != nil {
			log.Warn().Err(err).Msg("try-on response relay failed")
		}
	}
}
