package tests

import (
	"net/http"
	"strings"
	"testing"
)

func TestAccountImportURI(t *testing.T) {
	key := uniqueKey("real-import")

	uri := "otpauth://totp/Example:alice@example.com?secret=" + rfcSecret + "&issuer=Example"
	status, body := doJSON(t, http.MethodPost, "/api/v1/vault/accounts/import", map[string]any{
		"uri": uri,
		"key": key,
	})
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("import failed: status=%d message=%q", status, errEnv.Message)
	}
	defer deleteAccount(t, key)

	var data accountData
	decodeSuccess(t, body, &data)

	if data.Key != key || data.Name != "alice@example.com" {
		t.Fatalf("unexpected imported account: %+v", data)
	}
}

func TestAccountImportMalformedURI(t *testing.T) {
	status, _ := doJSON(t, http.MethodPost, "/api/v1/vault/accounts/import", map[string]any{
		"uri": "https://not-otpauth.example.com",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected bad request, got status=%d", status)
	}
}

func TestAccountImportFile(t *testing.T) {
	keyOne := uniqueKey("real-file-one")
	keyTwo := uniqueKey("real-file-two")

	content := strings.Join([]string{
		"otpauth://totp/" + keyOne + "?secret=" + rfcSecret,
		"otpauth://totp/broken-line",
		"otpauth://hotp/" + keyTwo + "?secret=" + rfcSecret + "&counter=3",
	}, "\n")

	status, body := doMultipart(t, http.MethodPost, "/api/v1/vault/accounts/import/file",
		"file", "accounts.txt", []byte(content))
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("file import failed: status=%d message=%q", status, errEnv.Message)
	}
	defer deleteAccount(t, keyOne)
	defer deleteAccount(t, keyTwo)

	var data struct {
		Created int `json:"created"`
		Failed  int `json:"failed"`
		Errors  []struct {
			Line   int    `json:"line"`
			Reason string `json:"reason"`
		} `json:"errors"`
	}
	decodeSuccess(t, body, &data)

	if data.Created != 2 || data.Failed != 1 {
		t.Fatalf("unexpected import summary: %+v", data)
	}
	if len(data.Errors) != 1 || data.Errors[0].Line != 2 {
		t.Fatalf("expected failure on line 2, got %+v", data.Errors)
	}
}
