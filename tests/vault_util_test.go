package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

// base32 of the ASCII seed "12345678901234567890" from the RFC appendices.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func uniqueKey(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

type accountData struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Algorithm string `json:"algorithm"`
	Digits    uint   `json:"digits"`
	Period    uint   `json:"period"`
	Encrypted bool   `json:"encrypted"`
}

type codeData struct {
	Key              string     `json:"key"`
	Type             string     `json:"type"`
	Code             string     `json:"code"`
	Algorithm        string     `json:"algorithm"`
	SecondsRemaining uint       `json:"seconds_remaining"`
	ExpiresAt        *time.Time `json:"expires_at"`
	Counter          uint64     `json:"counter"`
}

func createAccount(t *testing.T, payload map[string]any) accountData {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, "/api/v1/vault/accounts", payload)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("create account failed: status=%d message=%q", status, errEnv.Message)
	}

	var data accountData
	decodeSuccess(t, body, &data)

	return data
}

func deleteAccount(t *testing.T, key string) {
	t.Helper()

	status, body := doJSON(t, http.MethodDelete, "/api/v1/vault/accounts/"+key, nil)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("delete account failed: status=%d message=%q", status, errEnv.Message)
	}
}
