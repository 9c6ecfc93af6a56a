package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookievault/go-cookie-vault/internal/crypto"
	"github.com/cookievault/go-cookie-vault/internal/logger"
	"github.com/cookievault/go-cookie-vault/models"
)

const readerPassphrase = "correct horse battery staple"

// readerRemote serves canned QueryEntries / ListEntrySummaries responses.
type readerRemote struct {
	fakeRemote
	queryEntries []models.CookieEntry
	queryErr     error
	summaries    []models.EntrySummary
}

func (r *readerRemote) QueryEntries(context.Context, string) ([]models.CookieEntry, error) {
	return r.queryEntries, r.queryErr
}

func (r *readerRemote) ListEntrySummaries(context.Context) ([]models.EntrySummary, error) {
	return r.summaries, nil
}

// sealEntry encrypts the cookies under the test passphrase the way a sync
// run would have stored them.
func sealEntry(t *testing.T, domain string, syncedAt time.Time, cookies ...models.Cookie) models.CookieEntry {
	t.Helper()
	env, err := crypto.NewEnvelopeService().Encrypt(cookies, readerPassphrase)
	require.NoError(t, err)
	return models.CookieEntry{
		Domain:        domain,
		EncryptedData: env.Ciphertext,
		IV:            env.IV,
		Salt:          env.Salt,
		CookieCount:   len(cookies),
		SyncedAt:      syncedAt,
	}
}

func newTestReader(remote *readerRemote) *vaultReader {
	r := NewVaultReader(remote, crypto.NewEnvelopeService(), readerPassphrase, logger.Nop())
	return r.(*vaultReader)
}

func TestGetCookies_DecryptsAllMatchingEntries(t *testing.T) {
	now := time.Now()
	remote := &readerRemote{queryEntries: []models.CookieEntry{
		sealEntry(t, "linkedin.com", now, cookie("li_at", "linkedin.com"), cookie("lang", "linkedin.com")),
		sealEntry(t, ".www.linkedin.com", now, cookie("li_rm", ".www.linkedin.com")),
	}}
	reader := newTestReader(remote)

	cookies, err := reader.GetCookies(context.Background(), "linkedin.com", 0)
	require.NoError(t, err)
	assert.Len(t, cookies, 3, "cookies from every matching entry are merged")
}

func TestGetCookies_MaxAgeFiltersStaleEntries(t *testing.T) {
	now := time.Now()
	remote := &readerRemote{queryEntries: []models.CookieEntry{
		sealEntry(t, "example.com", now.Add(-time.Minute), cookie("sessionid", "example.com")),
		sealEntry(t, "example.com", now.Add(-48*time.Hour), cookie("old_token", "example.com")),
	}}
	reader := newTestReader(remote)
	reader.now = func() time.Time { return now }

	cookies, err := reader.GetCookies(context.Background(), "example.com", 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "sessionid", cookies[0].Name)
}

func TestGetCookies_WrongPassphraseFailsWholeCall(t *testing.T) {
	env, err := crypto.NewEnvelopeService().Encrypt([]models.Cookie{cookie("sessionid", "example.com")}, "other passphrase")
	require.NoError(t, err)

	remote := &readerRemote{queryEntries: []models.CookieEntry{{
		Domain:        "example.com",
		EncryptedData: env.Ciphertext,
		IV:            env.IV,
		Salt:          env.Salt,
		SyncedAt:      time.Now(),
	}}}
	reader := newTestReader(remote)

	_, err = reader.GetCookies(context.Background(), "example.com", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
}

func TestGetCookies_NoEntries(t *testing.T) {
	reader := newTestReader(&readerRemote{})

	cookies, err := reader.GetCookies(context.Background(), "example.com", 0)
	require.NoError(t, err)
	assert.Empty(t, cookies)
}

func TestCookieHeader(t *testing.T) {
	remote := &readerRemote{queryEntries: []models.CookieEntry{
		sealEntry(t, "example.com", time.Now(),
			cookie("sessionid", "example.com"),
			cookie("csrftoken", "example.com"),
		),
	}}
	reader := newTestReader(remote)

	header, err := reader.CookieHeader(context.Background(), "example.com", 0)
	require.NoError(t, err)
	assert.Equal(t, "sessionid=v; csrftoken=v", header)
}

func TestAutomationCookies_Normalization(t *testing.T) {
	exp := 4102444800.0
	raw := []models.Cookie{
		{Name: "sessionid", Value: "v", SameSite: "no_restriction", ExpirationDate: &exp},
		{Name: "csrftoken", Value: "v", Domain: ".example.com", Path: "/app", SameSite: "strict"},
		{Name: "pref", Value: "v", SameSite: "unspecified"},
	}
	remote := &readerRemote{queryEntries: []models.CookieEntry{
		sealEntry(t, "example.com", time.Now(), raw...),
	}}
	reader := newTestReader(remote)

	out, err := reader.AutomationCookies(context.Background(), "example.com", 0)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "example.com", out[0].Domain, "missing domain falls back to the queried domain")
	assert.Equal(t, "/", out[0].Path)
	assert.Equal(t, "None", out[0].SameSite)
	require.NotNil(t, out[0].Expires)
	assert.Equal(t, exp, *out[0].Expires)

	assert.Equal(t, ".example.com", out[1].Domain)
	assert.Equal(t, "/app", out[1].Path)
	assert.Equal(t, "Strict", out[1].SameSite)

	assert.Equal(t, "Lax", out[2].SameSite, "unknown policies normalize to the browser default")
}

func TestNormalizeSameSite(t *testing.T) {
	assert.Equal(t, "None", NormalizeSameSite("no_restriction"))
	assert.Equal(t, "None", NormalizeSameSite("None"))
	assert.Equal(t, "Strict", NormalizeSameSite("STRICT"))
	assert.Equal(t, "Lax", NormalizeSameSite("lax"))
	assert.Equal(t, "Lax", NormalizeSameSite("unspecified"))
}

func TestListDomains(t *testing.T) {
	remote := &readerRemote{summaries: []models.EntrySummary{
		{Domain: "example.com", CookieCount: 3, HasAuth: true},
	}}
	reader := newTestReader(remote)

	summaries, err := reader.ListDomains(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "example.com", summaries[0].Domain)
}
