package event

const VaultAccountCreatedDestination string = "vault_account_created"
const VaultAccountDeletedDestination string = "vault_account_deleted"
const VaultCodeIssuedDestination string = "vault_code_issued"

type VaultAccountCreatedMessage struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Algorithm string `json:"algorithm"`
	Digits    uint   `json:"digits"`
}

type VaultAccountDeletedMessage struct {
	Key string `json:"key"`
}

type VaultCodeIssuedMessage struct {
	Key     string `json:"key"`
	Type    string `json:"type"`
	Counter uint64 `json:"counter,omitempty"`
}
