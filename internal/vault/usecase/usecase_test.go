package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/govault/internal/pkg/clock"
	"github.com/shandysiswandi/govault/internal/pkg/config"
	"github.com/shandysiswandi/govault/internal/pkg/crypt"
	"github.com/shandysiswandi/govault/internal/pkg/goerror"
	"github.com/shandysiswandi/govault/internal/pkg/goroutine"
	"github.com/shandysiswandi/govault/internal/pkg/idempotency"
	"github.com/shandysiswandi/govault/internal/pkg/instrument"
	"github.com/shandysiswandi/govault/internal/pkg/otp"
	"github.com/shandysiswandi/govault/internal/pkg/validator"
	"github.com/shandysiswandi/govault/internal/vault/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// base32 of the ASCII seed "12345678901234567890" used by the RFC 4226
// and RFC 6238 appendices.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

type fakeRepo struct {
	mu       sync.Mutex
	accounts map[string]entity.Account
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accounts: make(map[string]entity.Account)}
}

func (f *fakeRepo) CreateAccount(_ context.Context, in entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.accounts[in.Key]; ok {
		return goerror.ErrConflict
	}
	f.accounts[in.Key] = in
	return nil
}

func (f *fakeRepo) GetAccountByKey(_ context.Context, key string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	acc, ok := f.accounts[key]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &acc, nil
}

func (f *fakeRepo) GetAccountList(_ context.Context) ([]entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]entity.Account, 0, len(f.accounts))
	for _, acc := range f.accounts {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (f *fakeRepo) GetAccountKeys(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(f.accounts))
	for key := range f.accounts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *fakeRepo) UpdateAccount(_ context.Context, in entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.accounts[in.Key]; !ok {
		return goerror.ErrNotFound
	}
	f.accounts[in.Key] = in
	return nil
}

func (f *fakeRepo) DeleteAccount(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.accounts[key]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.accounts, key)
	return nil
}

func (f *fakeRepo) IncrementAccountCounter(_ context.Context, key string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	acc, ok := f.accounts[key]
	if !ok {
		return 0, goerror.ErrNotFound
	}
	acc.Counter++
	f.accounts[key] = acc
	return acc.Counter, nil
}

func (f *fakeRepo) counterOf(key string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[key].Counter
}

type fakeMessaging struct {
	mu      sync.Mutex
	created []AccountCreatedEvent
	deleted []AccountDeletedEvent
	issued  []CodeIssuedEvent
}

func (f *fakeMessaging) PublishAccountCreated(_ context.Context, msg AccountCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, msg)
	return nil
}

func (f *fakeMessaging) PublishAccountDeleted(_ context.Context, msg AccountDeletedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, msg)
	return nil
}

func (f *fakeMessaging) PublishCodeIssued(_ context.Context, msg CodeIssuedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issued = append(f.issued, msg)
	return nil
}

// fakeIdemp mirrors the redis tracker's state machine in memory, minus
// the TTL expiry: marked states stay until cleared.
type fakeIdemp struct {
	mu     sync.Mutex
	states map[string]idempotency.State
}

func newFakeIdemp() *fakeIdemp {
	return &fakeIdemp{states: map[string]idempotency.State{}}
}

func (f *fakeIdemp) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if st, ok := f.states[key]; ok {
		return st, nil
	}
	f.states[key] = idempotency.StateInProgress
	return idempotency.StateNone, nil
}

func (f *fakeIdemp) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	f.setState(key, idempotency.StateCompleted)
	return nil
}

func (f *fakeIdemp) MarkFailed(_ context.Context, key string, _ time.Duration) error {
	f.setState(key, idempotency.StateFailed)
	return nil
}

func (f *fakeIdemp) Clear(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.states, key)
	return nil
}

func (f *fakeIdemp) setState(key string, st idempotency.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[key] = st
}

func (f *fakeIdemp) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	st, err := f.Acquire(ctx, key, 0)
	if err != nil {
		return err
	}

	switch st {
	case idempotency.StateInProgress:
		return idempotency.ErrAlreadyInProgress
	case idempotency.StateCompleted:
		return idempotency.ErrAlreadyCompleted
	case idempotency.StateFailed:
		return idempotency.ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		_ = f.MarkFailed(ctx, key, 0)
		return err
	}
	return f.MarkCompleted(ctx, key, 0)
}

type seqID struct {
	mu sync.Mutex
	n  int64
}

func (s *seqID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n
}

type harness struct {
	uc    *Usecase
	repo  *fakeRepo
	mq    *fakeMessaging
	idemp *fakeIdemp
}

func newHarness(t *testing.T, encrypt bool, ck clock.Clocker) *harness {
	t.Helper()

	yaml := "modules:\n  vault:\n    encrypt_secrets: false\n"
	if encrypt {
		yaml = "modules:\n  vault:\n    encrypt_secrets: true\n"
	}
	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	val, err := validator.NewV10Validator()
	require.NoError(t, err)

	enc, err := crypt.NewAESGCM(crypt.DeriveKey("test master passphrase"))
	require.NoError(t, err)

	if ck == nil {
		ck = clock.New()
	}

	repo := newFakeRepo()
	mq := &fakeMessaging{}
	idemp := newFakeIdemp()

	uc := New(Dependency{
		RepoDB:        repo,
		RepoMessaging: mq,
		Idempotency:   idemp,
		Validator:     val,
		Config:        cfg,
		Encryptor:     enc,
		Engine:        otp.NewEngine(ck),
		UID:           &seqID{},
		Clock:         ck,
		Instrument:    instrument.NewNoop(),
		Goroutine:     goroutine.NewManager(8),
	})

	return &harness{uc: uc, repo: repo, mq: mq, idemp: idemp}
}

func (h *harness) drain(t *testing.T) {
	t.Helper()
	require.NoError(t, h.uc.goroutine.Wait())
}

func TestAccountCreateDefaults(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)

	out, err := h.uc.AccountCreate(context.Background(), AccountCreateInput{
		Key:    "github",
		Secret: " jbsw y3dp ehpk 3pxp ",
	})
	require.NoError(t, err)

	assert.Equal(t, "github", out.Key)
	assert.Equal(t, "github", out.Name)
	assert.Equal(t, otp.TypeTOTP, out.Type)
	assert.Equal(t, otp.AlgorithmSHA1, out.Algorithm)
	assert.Equal(t, uint(6), out.Digits)
	assert.Equal(t, uint(30), out.Period)
	assert.False(t, out.Encrypted)

	acc, err := h.repo.GetAccountByKey(context.Background(), "github")
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", acc.Secret)

	h.drain(t)
	assert.Len(t, h.mq.created, 1)
	assert.Equal(t, "github", h.mq.created[0].Key)
}

func TestAccountCreateEncrypted(t *testing.T) {
	t.Parallel()

	h := newHarness(t, true, nil)

	out, err := h.uc.AccountCreate(context.Background(), AccountCreateInput{
		Key:    "gitlab",
		Secret: rfcSecret,
	})
	require.NoError(t, err)
	assert.True(t, out.Encrypted)

	acc, err := h.repo.GetAccountByKey(context.Background(), "gitlab")
	require.NoError(t, err)
	assert.True(t, acc.Encrypted)
	assert.NotEqual(t, rfcSecret, acc.Secret)
	assert.Contains(t, acc.Secret, ":")
}

func TestAccountCreateDuplicate(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)
	ctx := context.Background()

	_, err := h.uc.AccountCreate(ctx, AccountCreateInput{Key: "dup", Secret: rfcSecret})
	require.NoError(t, err)

	_, err = h.uc.AccountCreate(ctx, AccountCreateInput{Key: "dup", Secret: rfcSecret})
	require.Error(t, err)

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeConflict, gerr.Code())
}

func TestAccountCreateEncryptOverride(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)
	ctx := context.Background()

	encrypt := true
	out, err := h.uc.AccountCreate(ctx, AccountCreateInput{
		Key:     "sealed",
		Secret:  rfcSecret,
		Encrypt: &encrypt,
	})
	require.NoError(t, err)
	assert.True(t, out.Encrypted)

	acc, err := h.repo.GetAccountByKey(ctx, "sealed")
	require.NoError(t, err)
	assert.True(t, acc.Encrypted)
	assert.Contains(t, acc.Secret, ":")

	// The opposite direction: the config default says encrypt, the
	// request says plaintext.
	he := newHarness(t, true, nil)
	plain := false
	out, err = he.uc.AccountCreate(ctx, AccountCreateInput{
		Key:     "open",
		Secret:  rfcSecret,
		Encrypt: &plain,
	})
	require.NoError(t, err)
	assert.False(t, out.Encrypted)

	acc, err = he.repo.GetAccountByKey(ctx, "open")
	require.NoError(t, err)
	assert.Equal(t, rfcSecret, acc.Secret)
}

func TestAccountCreateAfterDelete(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)
	ctx := context.Background()

	_, err := h.uc.AccountCreate(ctx, AccountCreateInput{Key: "phoenix", Secret: rfcSecret})
	require.NoError(t, err)

	_, err = h.uc.AccountDelete(ctx, AccountDeleteInput{Key: "phoenix"})
	require.NoError(t, err)

	// The guard state from the first create must not survive the delete.
	out, err := h.uc.AccountCreate(ctx, AccountCreateInput{Key: "phoenix", Secret: rfcSecret})
	require.NoError(t, err)
	assert.Equal(t, "phoenix", out.Key)
}

func TestAccountCreateAfterFailedAttempt(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)
	ctx := context.Background()

	// A stale failure with no surviving account must not block the key.
	h.idemp.setState(createGuardKey("retry"), idempotency.StateFailed)

	out, err := h.uc.AccountCreate(ctx, AccountCreateInput{Key: "retry", Secret: rfcSecret})
	require.NoError(t, err)
	assert.Equal(t, "retry", out.Key)

	_, err = h.repo.GetAccountByKey(ctx, "retry")
	require.NoError(t, err)

	// A cached failure for a key that does exist is a plain duplicate.
	_, err = h.uc.AccountCreate(ctx, AccountCreateInput{Key: "taken", Secret: rfcSecret})
	require.NoError(t, err)
	h.idemp.setState(createGuardKey("taken"), idempotency.StateFailed)

	_, err = h.uc.AccountCreate(ctx, AccountCreateInput{Key: "taken", Secret: rfcSecret})
	require.Error(t, err)

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeConflict, gerr.Code())
}

func TestAccountCreateInvalidSecret(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)

	_, err := h.uc.AccountCreate(context.Background(), AccountCreateInput{
		Key:    "bad",
		Secret: "not-base32!!",
	})
	require.Error(t, err)

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
}

func TestAccountImport(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)

	uri := "otpauth://totp/Example:alice@example.com?secret=" + rfcSecret +
		"&issuer=Example&digits=8&period=60&algorithm=SHA256"
	out, err := h.uc.AccountImport(context.Background(), AccountImportInput{URI: uri})
	require.NoError(t, err)

	assert.Equal(t, "Example:alice@example.com", out.Key)
	assert.Equal(t, "alice@example.com", out.Name)
	assert.Equal(t, otp.AlgorithmSHA256, out.Algorithm)
	assert.Equal(t, uint(8), out.Digits)
	assert.Equal(t, uint(60), out.Period)
}

func TestAccountImportMalformed(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)

	_, err := h.uc.AccountImport(context.Background(), AccountImportInput{URI: "https://example.com"})
	require.Error(t, err)

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeInvalidFormat, gerr.Code())
}

func TestAccountImportFile(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)

	body := strings.Join([]string{
		"otpauth://totp/one?secret=" + rfcSecret,
		"",
		"# comment line",
		"otpauth://totp/broken", // no secret
		"otpauth://hotp/two?secret=" + rfcSecret + "&counter=5",
	}, "\n")

	out, err := h.uc.AccountImportFile(context.Background(), AccountImportFileInput{
		Reader: strings.NewReader(body),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Created)
	assert.Equal(t, 1, out.Failed)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, 4, out.Errors[0].Line)

	acc, err := h.repo.GetAccountByKey(context.Background(), "two")
	require.NoError(t, err)
	assert.Equal(t, otp.TypeHOTP, acc.Type)
	assert.Equal(t, uint64(5), acc.Counter)
}

func TestAccountDetail(t *testing.T) {
	t.Parallel()

	h := newHarness(t, true, nil)
	ctx := context.Background()

	_, err := h.uc.AccountCreate(ctx, AccountCreateInput{Key: "mail", Name: "Mailbox", Secret: rfcSecret})
	require.NoError(t, err)

	out, err := h.uc.AccountDetail(ctx, AccountDetailInput{Key: "mail"})
	require.NoError(t, err)

	assert.True(t, out.Encrypted)
	assert.Contains(t, out.URI, "otpauth://totp/")
	assert.Contains(t, out.URI, "secret="+rfcSecret)
}

func TestAccountDetailNotFound(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)
	ctx := context.Background()

	_, err := h.uc.AccountCreate(ctx, AccountCreateInput{Key: "known", Secret: rfcSecret})
	require.NoError(t, err)

	_, err = h.uc.AccountDetail(ctx, AccountDetailInput{Key: "unknown"})
	require.Error(t, err)

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeNotFound, gerr.Code())
	assert.Equal(t, []string{"known"}, gerr.Meta()["known_keys"])
}

func TestAccountUpdate(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)
	ctx := context.Background()

	_, err := h.uc.AccountCreate(ctx, AccountCreateInput{Key: "svc", Secret: rfcSecret})
	require.NoError(t, err)

	out, err := h.uc.AccountUpdate(ctx, AccountUpdateInput{
		Key:       "svc",
		Name:      "Service",
		Digits:    8,
		Period:    60,
		Algorithm: "sha512",
	})
	require.NoError(t, err)

	assert.Equal(t, "Service", out.Name)
	assert.Equal(t, uint(8), out.Digits)
	assert.Equal(t, uint(60), out.Period)
	assert.Equal(t, otp.AlgorithmSHA512, out.Algorithm)

	acc, err := h.repo.GetAccountByKey(ctx, "svc")
	require.NoError(t, err)
	assert.Equal(t, rfcSecret, acc.Secret) // key and secret untouched
}

func TestAccountUpdateEncryptToggle(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)
	ctx := context.Background()

	_, err := h.uc.AccountCreate(ctx, AccountCreateInput{Key: "seal", Secret: rfcSecret})
	require.NoError(t, err)

	encrypt := true
	out, err := h.uc.AccountUpdate(ctx, AccountUpdateInput{Key: "seal", Encrypt: &encrypt})
	require.NoError(t, err)
	assert.True(t, out.Encrypted)

	acc, err := h.repo.GetAccountByKey(ctx, "seal")
	require.NoError(t, err)
	assert.True(t, acc.Encrypted)
	assert.Contains(t, acc.Secret, ":")

	// And back to plaintext.
	plain := false
	out, err = h.uc.AccountUpdate(ctx, AccountUpdateInput{Key: "seal", Encrypt: &plain})
	require.NoError(t, err)
	assert.False(t, out.Encrypted)

	acc, err = h.repo.GetAccountByKey(ctx, "seal")
	require.NoError(t, err)
	assert.Equal(t, rfcSecret, acc.Secret)
}

func TestAccountDelete(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)
	ctx := context.Background()

	_, err := h.uc.AccountCreate(ctx, AccountCreateInput{Key: "gone", Secret: rfcSecret})
	require.NoError(t, err)

	_, err = h.uc.AccountDelete(ctx, AccountDeleteInput{Key: "gone"})
	require.NoError(t, err)

	_, err = h.repo.GetAccountByKey(ctx, "gone")
	require.ErrorIs(t, err, goerror.ErrNotFound)

	h.drain(t)
	require.Len(t, h.mq.deleted, 1)
	assert.Equal(t, "gone", h.mq.deleted[0].Key)
}

func TestCodeGenerateTOTP(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, clock.FixedClocker{T: time.Unix(59, 0)})
	ctx := context.Background()

	_, err := h.uc.AccountCreate(ctx, AccountCreateInput{
		Key:    "rfc",
		Secret: rfcSecret,
		Digits: 8,
	})
	require.NoError(t, err)

	out, err := h.uc.CodeGenerate(ctx, CodeGenerateInput{Key: "rfc"})
	require.NoError(t, err)

	assert.Equal(t, "94287082", out.Issuance.Code)
	assert.Equal(t, otp.AlgorithmSHA1, out.Issuance.Algorithm)
	assert.Equal(t, uint(1), out.Issuance.SecondsRemaining)
	assert.Equal(t, time.Unix(60, 0), out.Issuance.ExpiresAt)

	// TOTP issuance reads nothing and writes nothing, so it is not
	// audited.
	h.drain(t)
	assert.Empty(t, h.mq.issued)
}

func TestCodeGenerateHOTP(t *testing.T) {
	t.Parallel()

	h := newHarness(t, true, nil)
	ctx := context.Background()

	_, err := h.uc.AccountCreate(ctx, AccountCreateInput{Key: "token", Secret: rfcSecret, Type: "hotp"})
	require.NoError(t, err)

	out, err := h.uc.CodeGenerate(ctx, CodeGenerateInput{Key: "token"})
	require.NoError(t, err)
	assert.Equal(t, "755224", out.Issuance.Code)
	assert.Equal(t, uint64(1), out.Issuance.Counter)

	out, err = h.uc.CodeGenerate(ctx, CodeGenerateInput{Key: "token"})
	require.NoError(t, err)
	assert.Equal(t, "287082", out.Issuance.Code)
	assert.Equal(t, uint64(2), out.Issuance.Counter)
	assert.True(t, out.Issuance.ExpiresAt.IsZero())

	h.drain(t)
	require.Len(t, h.mq.issued, 2)
	assert.Equal(t, uint64(2), h.mq.issued[1].Counter)
}

func TestCodeGenerateHOTPConcurrent(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)
	ctx := context.Background()

	_, err := h.uc.AccountCreate(ctx, AccountCreateInput{Key: "burst", Secret: rfcSecret, Type: "hotp"})
	require.NoError(t, err)

	const n = 25
	counters := make(chan uint64, n)

	var wg sync.WaitGroup
	for range n {
		wg.Go(func() {
			out, err := h.uc.CodeGenerate(ctx, CodeGenerateInput{Key: "burst"})
			assert.NoError(t, err)
			counters <- out.Issuance.Counter
		})
	}
	wg.Wait()
	close(counters)

	seen := map[uint64]bool{}
	for c := range counters {
		assert.False(t, seen[c], "counter value %d issued twice", c)
		seen[c] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, uint64(n), h.repo.counterOf("burst"))
}

func TestCodeGenerateNotFound(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, nil)

	_, err := h.uc.CodeGenerate(context.Background(), CodeGenerateInput{Key: "absent"})
	require.Error(t, err)

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeNotFound, gerr.Code())
}

func TestCodeGenerateAllIsolatesFailures(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false, clock.FixedClocker{T: time.Unix(59, 0)})
	ctx := context.Background()

	_, err := h.uc.AccountCreate(ctx, AccountCreateInput{Key: "good", Secret: rfcSecret, Digits: 8})
	require.NoError(t, err)

	// A row whose envelope cannot be opened anymore.
	require.NoError(t, h.repo.CreateAccount(ctx, entity.Account{
		Key:       "corrupt",
		Name:      "corrupt",
		Secret:    "deadbeef:deadbeef",
		Encrypted: true,
		Digits:    6,
		Period:    30,
		Algorithm: otp.AlgorithmSHA1,
		Type:      otp.TypeTOTP,
	}))

	out, err := h.uc.CodeGenerateAll(ctx)
	require.NoError(t, err)
	require.Len(t, out.Codes, 2)

	byKey := map[string]BatchCode{}
	for _, c := range out.Codes {
		byKey[c.Key] = c
	}

	assert.Equal(t, "94287082", byKey["good"].Code)
	assert.Equal(t, otp.AlgorithmSHA1, byKey["good"].Algorithm)
	assert.Equal(t, time.Unix(60, 0), byKey["good"].ExpiresAt)
	assert.Empty(t, byKey["good"].Error)
	assert.Empty(t, byKey["corrupt"].Code)
	assert.Equal(t, "code generation failed", byKey["corrupt"].Error)
}

func TestBatchReason(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "code generation failed", batchReason(errors.New("boom")))
	assert.Equal(t, "code generation failed", batchReason(goerror.NewServer(errors.New("db down"))))
	assert.Equal(t, "account not found", batchReason(goerror.NewBusiness("account not found", goerror.CodeNotFound)))
}
