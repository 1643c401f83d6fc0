package inbound

import "time"

type AccountCreateRequest struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Secret    string `json:"secret"`
	Type      string `json:"type"`
	Algorithm string `json:"algorithm"`
	Digits    uint   `json:"digits"`
	Period    uint   `json:"period"`
	Counter   uint64 `json:"counter"`
	Encrypt   *bool  `json:"encrypt,omitempty"`
}

type AccountResponse struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Algorithm string `json:"algorithm"`
	Digits    uint   `json:"digits"`
	Period    uint   `json:"period"`
	Encrypted bool   `json:"encrypted"`
}

func (AccountResponse) Message() string {
	return "Account saved."
}

type AccountImportRequest struct {
	URI string `json:"uri"`
	Key string `json:"key,omitempty"`
}

type AccountImportFileResponse struct {
	Created int                      `json:"created"`
	Failed  int                      `json:"failed"`
	Errors  []AccountImportLineError `json:"errors,omitempty"`
}

type AccountImportLineError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type AccountUpdateRequest struct {
	Name      string `json:"name"`
	Secret    string `json:"secret"`
	Algorithm string `json:"algorithm"`
	Digits    uint   `json:"digits"`
	Period    uint   `json:"period"`
	Encrypt   *bool  `json:"encrypt,omitempty"`
}

type AccountDeleteResponse struct {
	Key string `json:"key"`
}

func (AccountDeleteResponse) Message() string {
	return "Account deleted."
}

type AccountSummaryResponse struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Algorithm string    `json:"algorithm"`
	Digits    uint      `json:"digits"`
	Period    uint      `json:"period"`
	Counter   uint64    `json:"counter"`
	Encrypted bool      `json:"encrypted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AccountListResponse struct {
	Accounts []AccountSummaryResponse `json:"accounts"`
}

type AccountDetailResponse struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Algorithm string    `json:"algorithm"`
	Digits    uint      `json:"digits"`
	Period    uint      `json:"period"`
	Counter   uint64    `json:"counter"`
	Encrypted bool      `json:"encrypted"`
	URI       string    `json:"uri"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CodeResponse struct {
	Key              string     `json:"key"`
	Type             string     `json:"type"`
	Code             string     `json:"code"`
	Algorithm        string     `json:"algorithm"`
	SecondsRemaining uint       `json:"seconds_remaining,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	Counter          uint64     `json:"counter,omitempty"`
}

type BatchCodeResponse struct {
	Key              string     `json:"key"`
	Name             string     `json:"name"`
	Type             string     `json:"type"`
	Code             string     `json:"code,omitempty"`
	Algorithm        string     `json:"algorithm,omitempty"`
	SecondsRemaining uint       `json:"seconds_remaining,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	Counter          uint64     `json:"counter,omitempty"`
	Error            string     `json:"error,omitempty"`
}

type CodeListResponse struct {
	Codes []BatchCodeResponse `json:"codes"`
}
