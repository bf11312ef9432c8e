package tickets

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRPayloadSignature(t *testing.T) {
	payload := QRPayload("tk-42", "bk-7", "F12")

	parts := strings.Split(payload, "|")
	require.Len(t, parts, 5)
	assert.Equal(t, "tk-42", parts[0])
	assert.Equal(t, "bk-7", parts[1])
	assert.Equal(t, "F12", parts[2])

	data := strings.Join(parts[:4], "|")
	mac := hmac.New(sha256.New, []byte(hmacSecret))
	mac.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, parts[4])
}

func TestQRPayloadTamperDetected(t *testing.T) {
	payload := QRPayload("tk-42", "bk-7", "F12")
	i := strings.Index(payload, "|")
	tampered := "tk-43" + payload[i:]

	parts := strings.Split(tampered, "|")
	data := strings.Join(parts[:4], "|")
	mac := hmac.New(sha256.New, []byte(hmacSecret))
	mac.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.NotEqual(t, want, parts[4])
}
