package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func encodeKeys(t *testing.T, key *rsa.PrivateKey) (string, string) {
	t.Helper()
	priv := pem.EncodeToMemory(&pem.Block{
		Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pub := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	return string(priv), string(pub)
}

func TestJWTRoundTrip(t *testing.T) {
	key := generateKey(t)
	j := NewJWTFromKeys(key, &key.PublicKey, time.Hour)

	token, err := j.SignPlayer(7, "alice")
	require.NoError(t, err)

	claims, err := j.ParsePlayerClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.PlayerId)
	assert.Equal(t, "alice", claims.Username)
}

func TestJWTRejectsForeignKey(t *testing.T) {
	key := generateKey(t)
	other := generateKey(t)
	signer := NewJWTFromKeys(other, &other.PublicKey, time.Hour)
	verifier := NewJWTFromKeys(key, &key.PublicKey, time.Hour)

	token, err := signer.SignPlayer(1, "mallory")
	require.NoError(t, err)
	_, err = verifier.ParsePlayerClaims(token)
	assert.Error(t, err)
}

func TestNewJWTFromConfig(t *testing.T) {
	key := generateKey(t)
	priv, pub := encodeKeys(t, key)

	pubFile := filepath.Join(t.TempDir(), "jwt.pub")
	require.NoError(t, os.WriteFile(pubFile, []byte(pub), 0o600))

	j, err := NewJWT(JWTKeys{PrivateKey: priv, PublicKeyFile: pubFile})
	require.NoError(t, err)
	assert.Equal(t, time.Hour*24*30, j.TokenLifetime())

	_, err = NewJWT(JWTKeys{PrivateKey: priv})
	assert.Error(t, err)

	_, err = NewJWT(JWTKeys{PrivateKey: "garbage", PublicKey: pub})
	assert.Error(t, err)
}

func TestCookiesRoundTrip(t *testing.T) {
	key := generateKey(t)
	j := NewJWTFromKeys(key, &key.PublicKey, time.Hour)
	c := NewCookies(CookieOptions{Secure: true, SameSite: "lax"}, j)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	token, err := j.SignPlayer(3, "bob")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, c.Refresh(w, token))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range w.Result().Cookies() {
		r.AddCookie(cookie)
	}
	claims, err := c.ParsePlayerClaims(r)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)

	assert.Error(t, c.Refresh(httptest.NewRecorder(), "not-a-token"))

	_, err = c.ParsePlayerClaims(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Error(t, err)
}

func TestCookiesClear(t *testing.T) {
	c := NewCookies(CookieOptions{}, nil)
	w := httptest.NewRecorder()
	c.Clear(w)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, cookie := range cookies {
		assert.Equal(t, -1, cookie.MaxAge)
	}
}
