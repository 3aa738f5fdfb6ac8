package middleware

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Headers the chat platform sets on interaction webhooks.
const (
	SignatureHeader          = "X-Signature-Ed25519"
	SignatureTimestampHeader = "X-Signature-Timestamp"
)

const maxSignatureAge = 5 * time.Minute

// SignatureVerifier checks that interaction webhooks were signed by the chat platform.
type SignatureVerifier struct {
	key ed25519.PublicKey
	now func() time.Time
}

// NewSignatureVerifier binds the platform public key. A nil key rejects every request.
func NewSignatureVerifier(key ed25519.PublicKey) *SignatureVerifier {
	return &SignatureVerifier{key: key, now: time.Now}
}

// Verify reports whether signature covers timestamp followed by body.
func (v *SignatureVerifier) Verify(timestamp string, body []byte, signature string) bool {
	if len(v.key) != ed25519.PublicKeySize || timestamp == "" {
		return false
	}
	sig, err := hex.DecodeString(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	if age := v.now().Sub(time.Unix(unix, 0)); age > maxSignatureAge || age < -maxSignatureAge {
		return false
	}

	message := make([]byte, 0, len(timestamp)+len(body))
	message = append(message, timestamp...)
	message = append(message, body...)
	return ed25519.Verify(v.key, message, sig)
}

// SignatureRequired rejects interaction requests without a valid platform signature.
func SignatureRequired(verifier *SignatureVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			data, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
				return
			}
			body = data
		}

		if !verifier.Verify(c.GetHeader(SignatureTimestampHeader), body, c.GetHeader(SignatureHeader)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid request signature"})
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}
