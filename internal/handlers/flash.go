package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const flashCookie = "flash"

// Flash carries a one-shot message to the next rendered page in a signed
// cookie. Cookies with a bad signature are dropped.
type Flash struct {
	key []byte
}

func NewFlash(secret string) (*Flash, error) {
	if secret == "" {
		return nil, errors.New("flash: secret key is empty")
	}
	key := make([]byte, sha256.Size)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("blogly flash cookie"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}
	return &Flash{key: key}, nil
}

func (f *Flash) Set(w http.ResponseWriter, msg string) {
	if f == nil {
		return
	}
	payload := base64.RawURLEncoding.EncodeToString([]byte(msg))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    payload + "." + f.sign(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Get returns the pending message, if any, and clears it.
func (f *Flash) Get(w http.ResponseWriter, r *http.Request) string {
	if f == nil {
		return ""
	}
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	payload, sig, ok := strings.Cut(cookie.Value, ".")
	if !ok || !hmac.Equal([]byte(sig), []byte(f.sign(payload))) {
		return ""
	}
	msg, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return ""
	}
	return string(msg)
}

func (f *Flash) sign(payload string) string {
	mac := hmac.New(sha256.New, f.key)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
