package tests

import (
	"net/http"
	"testing"
)

func TestAccountLifecycle(t *testing.T) {
	// Arrange
	key := uniqueKey("real-account")

	// Act
	created := createAccount(t, map[string]any{
		"key":    key,
		"secret": rfcSecret,
	})
	defer deleteAccount(t, key)

	// Assert
	if created.Key != key || created.Name != key {
		t.Fatalf("unexpected created account: %+v", created)
	}
	if created.Type != "totp" || created.Algorithm != "sha1" || created.Digits != 6 || created.Period != 30 {
		t.Fatalf("defaults not applied: %+v", created)
	}

	status, body := doJSON(t, http.MethodGet, "/api/v1/vault/accounts/"+key, nil)
	if status != http.StatusOK {
		t.Fatalf("detail failed: status=%d", status)
	}

	var detail struct {
		accountData
		URI string `json:"uri"`
	}
	decodeSuccess(t, body, &detail)
	if detail.URI == "" {
		t.Fatal("expected provisioning uri")
	}
}

func TestAccountCreateDuplicateKey(t *testing.T) {
	key := uniqueKey("real-dup")

	createAccount(t, map[string]any{"key": key, "secret": rfcSecret})
	defer deleteAccount(t, key)

	status, body := doJSON(t, http.MethodPost, "/api/v1/vault/accounts", map[string]any{
		"key":    key,
		"secret": rfcSecret,
	})
	if status != http.StatusConflict {
		t.Fatalf("expected conflict, got status=%d body=%s", status, body)
	}
}

func TestAccountRecreateAfterDelete(t *testing.T) {
	key := uniqueKey("real-recreate")

	createAccount(t, map[string]any{"key": key, "secret": rfcSecret})
	deleteAccount(t, key)

	// Uniqueness covers live accounts only; the key is free again right
	// after the delete.
	recreated := createAccount(t, map[string]any{"key": key, "secret": rfcSecret})
	defer deleteAccount(t, key)

	if recreated.Key != key {
		t.Fatalf("unexpected recreated account: %+v", recreated)
	}
}

func TestAccountCreateEncryptField(t *testing.T) {
	key := uniqueKey("real-encrypt")

	created := createAccount(t, map[string]any{
		"key":     key,
		"secret":  rfcSecret,
		"encrypt": true,
	})
	defer deleteAccount(t, key)

	if !created.Encrypted {
		t.Fatalf("expected an encrypted account: %+v", created)
	}
}

func TestAccountUpdate(t *testing.T) {
	key := uniqueKey("real-update")

	createAccount(t, map[string]any{"key": key, "secret": rfcSecret})
	defer deleteAccount(t, key)

	status, body := doJSON(t, http.MethodPut, "/api/v1/vault/accounts/"+key, map[string]any{
		"name":      "Renamed",
		"digits":    8,
		"period":    60,
		"algorithm": "sha256",
	})
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("update failed: status=%d message=%q", status, errEnv.Message)
	}

	var updated accountData
	decodeSuccess(t, body, &updated)
	if updated.Name != "Renamed" || updated.Digits != 8 || updated.Period != 60 || updated.Algorithm != "sha256" {
		t.Fatalf("unexpected updated account: %+v", updated)
	}
}

func TestAccountNotFoundListsKnownKeys(t *testing.T) {
	key := uniqueKey("real-known")

	createAccount(t, map[string]any{"key": key, "secret": rfcSecret})
	defer deleteAccount(t, key)

	status, body := doJSON(t, http.MethodGet, "/api/v1/vault/accounts/definitely-missing", nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected not found, got status=%d", status)
	}

	errEnv := decodeError(t, body)
	known, ok := errEnv.Meta["known_keys"].([]any)
	if !ok {
		t.Fatalf("expected known_keys in error meta, got %v", errEnv.Meta)
	}

	found := false
	for _, k := range known {
		if k == key {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q among known keys %v", key, known)
	}
}

func TestAccountList(t *testing.T) {
	key := uniqueKey("real-list")

	createAccount(t, map[string]any{"key": key, "secret": rfcSecret})
	defer deleteAccount(t, key)

	status, body := doJSON(t, http.MethodGet, "/api/v1/vault/accounts", nil)
	if status != http.StatusOK {
		t.Fatalf("list failed: status=%d", status)
	}

	var data struct {
		Accounts []accountData `json:"accounts"`
	}
	decodeSuccess(t, body, &data)

	found := false
	for _, acc := range data.Accounts {
		if acc.Key == key {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q in account list", key)
	}
}
