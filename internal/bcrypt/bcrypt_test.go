package bcrypt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gobcrypt/internal/base64x"
	"github.com/dmitrijs2005/gobcrypt/internal/entropy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xbcrypt "golang.org/x/crypto/bcrypt"
)

// Vectors produced by the reference C implementation.
var knownHashes = []struct {
	password string
	salt     string
	hash     string
}{
	{"Kk4DQuMMfZL9o", "$2a$04$cVWp4XaNU8a4v1uMRum2SO", "$2a$04$cVWp4XaNU8a4v1uMRum2SO026BWLIoQMD/TXg5uZV.0P.uO8m3YEm"},
	{"9IeRXmnGxMYbs", "$2a$04$pQ7gRO7e6wx/936oXhNjrO", "$2a$04$pQ7gRO7e6wx/936oXhNjrOUNOHL1D0h1N2IDbJZYs.1ppzSof6SPy"},
	{"xVQVbwa1S0M8r", "$2a$04$SQe9knOzepOVKoYXo9xTte", "$2a$04$SQe9knOzepOVKoYXo9xTteNYr6MBwVz4tpriJVe3PNgYufGIsgKcW"},
	{"Zfgr26LWd22Za", "$2a$04$eH8zX.q5Q.j2hO1NkVYJQO", "$2a$04$eH8zX.q5Q.j2hO1NkVYJQOM6KxntS/ow3.YzVmFrE4t//CoF4fvne"},
	{"Tg4daC27epFBE", "$2a$04$ahiTdwRXpUG2JLRcIznxc.", "$2a$04$ahiTdwRXpUG2JLRcIznxc.s1.ydaPGD372bsGs8NqyYjLY1inG5n2"},
	{"xhQPMmwh5ALzW", "$2a$04$nQn78dV0hGHf5wUBe0zOFu", "$2a$04$nQn78dV0hGHf5wUBe0zOFu8n07ZbWWOKoGasZKRspZxtt.vBRNMIy"},
	{"59je8h5Gj71tg", "$2a$04$cvXudZ5ugTg95W.rOjMITu", "$2a$04$cvXudZ5ugTg95W.rOjMITuM1jC0piCl3zF5cmGhzCibHZrNHkmckG"},
	{"wT4fHJa2N9WSW", "$2a$04$YYjtiq4Uh88yUsExO0RNTu", "$2a$04$YYjtiq4Uh88yUsExO0RNTuEJ.tZlsONac16A8OcLHleWFjVawfGvO"},
	{"uSgFRnQdOgm4S", "$2a$04$WLTjgY/pZSyqX/fbMbJzf.", "$2a$04$WLTjgY/pZSyqX/fbMbJzf.qxCeTMQOzgL.CimRjMHtMxd/VGKojMu"},
	{"tEPtJZXur16Vg", "$2a$04$2moPs/x/wnCfeQ5pCheMcu", "$2a$04$2moPs/x/wnCfeQ5pCheMcuSJQ/KYjOZG780UjA/SiR.KsYWNrC7SG"},
	{"vvho8C6nlVf9K", "$2a$04$HrEYC/AQ2HS77G78cQDZQ.", "$2a$04$HrEYC/AQ2HS77G78cQDZQ.r44WGcruKw03KHlnp71yVQEwpsi3xl2"},
	{"5auCCY9by0Ruf", "$2a$04$vVYgSTfB8KVbmhbZE/k3R.", "$2a$04$vVYgSTfB8KVbmhbZE/k3R.ux9A0lJUM4CZwCkHI9fifke2.rTF7MG"},
	{"GtTkR6qn2QOZW", "$2a$04$JfoNrR8.doieoI8..F.C1O", "$2a$04$JfoNrR8.doieoI8..F.C1OQgwE3uTeuardy6lw0AjALUzOARoyf2m"},
	{"zKo8vdFSnjX0f", "$2a$04$HP3I0PUs7KBEzMBNFw7o3O", "$2a$04$HP3I0PUs7KBEzMBNFw7o3O7f/uxaZU7aaDot1quHMgB2yrwBXsgyy"},
	{"I9VfYlacJiwiK", "$2a$04$xnFVhJsTzsFBTeP3PpgbMe", "$2a$04$xnFVhJsTzsFBTeP3PpgbMeMREb6rdKV9faW54Sx.yg9plf4jY8qT6"},
	{"VFPO7YXnHQbQO", "$2a$04$WQp9.igoLqVr6Qk70mz6xu", "$2a$04$WQp9.igoLqVr6Qk70mz6xuRxE0RttVXXdukpR9N54x17ecad34ZF6"},
	{"VDx5BdxfxstYk", "$2a$04$xgZtlonpAHSU/njOCdKztO", "$2a$04$xgZtlonpAHSU/njOCdKztOPuPFzCNVpB4LGicO4/OGgHv.uKHkwsS"},
	{"dEe6XfVGrrfSH", "$2a$04$2Siw3Nv3Q/gTOIPetAyPr.", "$2a$04$2Siw3Nv3Q/gTOIPetAyPr.GNj3aO0lb1E5E9UumYGKjP9BYqlNWJe"},
	{"cTT0EAFdwJiLn", "$2a$04$7/Qj7Kd8BcSahPO4khB8me", "$2a$04$7/Qj7Kd8BcSahPO4khB8me4ssDJCW3r4OGYqPF87jxtrSyPj5cS5m"},
	{"J8eHUDuxBB520", "$2a$04$VvlCUKbTMjaxaYJ.k5juoe", "$2a$04$VvlCUKbTMjaxaYJ.k5juoecpG/7IzcH1AkmqKi.lIZMVIOLClWAk."},
	{"", "$2a$06$DCq7YPn5Rq63x1Lad4cll.", "$2a$06$DCq7YPn5Rq63x1Lad4cll.TV4S6ytwfsfvkgY8jIucDrjc8deX1s."},
}

func zeroSource(n int) entropy.Source {
	return entropy.NewReaderSource(bytes.NewReader(bytes.Repeat([]byte("0"), n)))
}

type brokenSource struct{}

func (brokenSource) Fill([]byte) error { return errors.New("no entropy") }

func TestHashPassword_KnownVectors(t *testing.T) {
	for _, tc := range knownHashes {
		t.Run(tc.password, func(t *testing.T) {
			got, err := HashPassword([]byte(tc.password), []byte(tc.salt))
			require.NoError(t, err)
			assert.Equal(t, tc.hash, string(got))
		})
	}
}

func TestHashPassword_ExistingHashAsSalt(t *testing.T) {
	for _, tc := range knownHashes {
		got, err := HashPassword([]byte(tc.password), []byte(tc.hash))
		require.NoError(t, err)
		assert.Equal(t, tc.hash, string(got))
	}
}

func TestHashPassword_HighCostVectors(t *testing.T) {
	if testing.Short() {
		t.Skip("high cost vectors skipped in short mode")
	}

	tests := []struct {
		password, salt, want string
	}{
		{"password", "$2b$12$R9h/cIPz0gi.URNNX3kh2O", "$2b$12$R9h/cIPz0gi.URNNX3kh2OoLPwTdOAymPHsrvQP3DDZabggtl0m6W"},
		{"abc123xyz", "$2a$12$R9h/cIPz0gi.URNNX3kh2O", "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"},
		{"012345678901234567890123456789012345678901234567890123456", "$2a$10$XajjQvNhvvRt5GSeFk1xFe", "$2a$10$XajjQvNhvvRt5GSeFk1xFe5l47dONXg781AmZtd869sO8zfsHuw7C"},
	}
	for _, tt := range tests {
		got, err := HashPassword([]byte(tt.password), []byte(tt.salt))
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestFixedVectors_VerifyWithReference(t *testing.T) {
	fixed := map[string]string{
		"$2b$04$R9h/cIPz0gi.URNNX3kh2OgfKBJ6F5znRH5wtbnPL60tMgJ0jG3sS": "password",
		"$2y$04$R9h/cIPz0gi.URNNX3kh2OgfKBJ6F5znRH5wtbnPL60tMgJ0jG3sS": "password",
		"$2b$04$R9h/cIPz0gi.URNNX3kh2OEtdKdmundBI9FuDbv8vrL6v788scpgC": strings.Repeat("a", 72),
	}
	for _, tt := range knownHashes {
		fixed[tt.hash] = tt.password
	}

	for hashed, password := range fixed {
		assert.NoError(t, xbcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)), hashed)
	}
}

func TestHashPassword_VersionTagPreserved(t *testing.T) {
	tests := []struct {
		salt, want string
	}{
		{"$2b$04$R9h/cIPz0gi.URNNX3kh2O", "$2b$04$R9h/cIPz0gi.URNNX3kh2OgfKBJ6F5znRH5wtbnPL60tMgJ0jG3sS"},
		{"$2y$04$R9h/cIPz0gi.URNNX3kh2O", "$2y$04$R9h/cIPz0gi.URNNX3kh2OgfKBJ6F5znRH5wtbnPL60tMgJ0jG3sS"},
	}
	for _, tt := range tests {
		got, err := HashPassword([]byte("password"), []byte(tt.salt))
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
		require.NoError(t, xbcrypt.CompareHashAndPassword([]byte(tt.want), []byte("password")))
	}

	// the tag is a label only
	a, err := HashPassword([]byte("password"), []byte("$2x$04$R9h/cIPz0gi.URNNX3kh2O"))
	require.NoError(t, err)
	assert.Equal(t, "$2x$04$", string(a[:7]))
	assert.Equal(t, "gfKBJ6F5znRH5wtbnPL60tMgJ0jG3sS", string(a[29:]))
}

func TestHashPassword_PasswordLength(t *testing.T) {
	salt := []byte("$2b$04$R9h/cIPz0gi.URNNX3kh2O")

	got, err := HashPassword(bytes.Repeat([]byte("a"), 72), salt)
	require.NoError(t, err)
	assert.Equal(t, "$2b$04$R9h/cIPz0gi.URNNX3kh2OEtdKdmundBI9FuDbv8vrL6v788scpgC", string(got))

	_, err = HashPassword(bytes.Repeat([]byte("a"), 73), salt)
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	ok, err := VerifyPassword(bytes.Repeat([]byte("a"), 73), got)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.False(t, ok)
}

func TestHashPasswordPolicy_Truncate(t *testing.T) {
	salt := []byte("$2b$04$R9h/cIPz0gi.URNNX3kh2O")
	long := append(bytes.Repeat([]byte("a"), 72), 'b', 'c')

	got, err := HashPasswordPolicy(long, salt, TruncateLong)
	require.NoError(t, err)
	assert.Equal(t, "$2b$04$R9h/cIPz0gi.URNNX3kh2OEtdKdmundBI9FuDbv8vrL6v788scpgC", string(got))

	ok, err := VerifyPasswordPolicy(bytes.Repeat([]byte("a"), 72), got, TruncateLong)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHashPassword_InvalidSalt(t *testing.T) {
	tests := []struct {
		name    string
		salt    string
		wantErr []error
	}{
		{name: "unknown version", salt: "$2c$12$R9h/cIPz0gi.URNNX3kh2O", wantErr: []error{ErrInvalidSalt}},
		{name: "unknown version 2z", salt: "$2z$04$cVWp4XaNU8a4v1uMRum2SO", wantErr: []error{ErrInvalidSalt}},
		{name: "cost below minimum", salt: "$2b$3$R9h/cIPz0gi.URNNX3kh2O", wantErr: []error{ErrInvalidSalt, ErrInvalidCost}},
		{name: "cost above maximum", salt: "$2b$32$R9h/cIPz0gi.URNNX3kh2O", wantErr: []error{ErrInvalidSalt, ErrInvalidCost}},
		{name: "cost not numeric", salt: "$2b$1x$R9h/cIPz0gi.URNNX3kh2O", wantErr: []error{ErrInvalidSalt}},
		{name: "negative cost", salt: "$2b$-4$R9h/cIPz0gi.URNNX3kh2O", wantErr: []error{ErrInvalidSalt}},
		{name: "signed cost", salt: "$2b$+12$R9h/cIPz0gi.URNNX3kh2O", wantErr: []error{ErrInvalidSalt}},
		{name: "two segments", salt: "$2b$12", wantErr: []error{ErrInvalidSalt}},
		{name: "four segments", salt: "$2b$12$R9h/cIPz0gi.URNNX3kh2O$extra", wantErr: []error{ErrInvalidSalt}},
		{name: "empty", salt: "", wantErr: []error{ErrInvalidSalt}},
		{name: "short salt", salt: "$2b$12$R9h/cIPz0gi.URNNX3kh2", wantErr: []error{ErrInvalidSalt}},
		{name: "bad salt symbol", salt: "$2b$12$R9h/cIPz0gi.URNNX3kh=O", wantErr: []error{ErrInvalidSalt, base64x.ErrInvalidEncoding}},
		{name: "non-canonical salt", salt: "$2b$12$R9h/cIPz0gi.URNNX3kh2P", wantErr: []error{ErrInvalidSalt, base64x.ErrInvalidEncoding}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HashPassword([]byte("password"), []byte(tt.salt))
			require.Error(t, err)
			assert.Nil(t, got)
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestParse_EmptySegmentsDropped(t *testing.T) {
	p, err := Parse([]byte("$$2b$$05$$R9h/cIPz0gi.URNNX3kh2O"))
	require.NoError(t, err)
	assert.Equal(t, Version2B, p.Version)
	assert.Equal(t, 5, p.Cost)
	assert.False(t, p.HasDigest())
}

func TestSerializeParse_RoundTrip(t *testing.T) {
	salt := []byte("0123456789abcdef")
	dgst := []byte("twenty-three bytes long")
	require.Len(t, dgst, DigestLen)

	for _, v := range []Version{Version2A, Version2B, Version2X, Version2Y} {
		for cost := MinCost; cost <= MaxCost; cost++ {
			enc, err := Serialize(v, cost, salt, dgst)
			require.NoError(t, err)
			require.Len(t, enc, 60)

			p, err := Parse(enc)
			require.NoError(t, err)
			assert.Equal(t, v, p.Version)
			assert.Equal(t, cost, p.Cost)
			assert.Equal(t, salt, p.Salt[:])

			d, err := p.Digest()
			require.NoError(t, err)
			assert.Equal(t, dgst, d)
		}
	}
}

func TestSerialize_Errors(t *testing.T) {
	salt := make([]byte, SaltLen)

	_, err := Serialize(Version2B, 3, salt, nil)
	assert.ErrorIs(t, err, ErrInvalidCost)

	_, err = Serialize(Version2B, 32, salt, nil)
	assert.ErrorIs(t, err, ErrInvalidCost)

	_, err = Serialize(Version(0), 10, salt, nil)
	assert.ErrorIs(t, err, ErrInvalidSalt)

	_, err = Serialize(Version2B, 10, salt[:15], nil)
	assert.ErrorIs(t, err, ErrInvalidSalt)

	_, err = Serialize(Version2B, 10, salt, make([]byte, 24))
	assert.ErrorIs(t, err, ErrInvalidDigest)
}

func TestSerialize_SaltOnly(t *testing.T) {
	enc, err := Serialize(Version2A, 4, bytes.Repeat([]byte("0"), SaltLen), nil)
	require.NoError(t, err)
	assert.Equal(t, "$2a$04$KB.uKB.uKB.uKB.uKB.uK.", string(enc))
}

func TestGenSalt(t *testing.T) {
	got, err := GenSalt(zeroSource(16), DefaultCost, Version2B)
	require.NoError(t, err)
	assert.Equal(t, "$2b$12$KB.uKB.uKB.uKB.uKB.uK.", string(got))

	for cost := MinCost; cost <= MaxCost; cost++ {
		got, err := GenSalt(zeroSource(16), cost, Version2A)
		require.NoError(t, err)
		assert.Len(t, got, 29)
		assert.True(t, strings.HasSuffix(string(got), "$KB.uKB.uKB.uKB.uKB.uK."))

		c, err := Cost(got)
		require.NoError(t, err)
		assert.Equal(t, cost, c)
	}
}

func TestGenSalt_Errors(t *testing.T) {
	for _, cost := range []int{0, 1, 2, 3, 32, 100} {
		_, err := GenSalt(zeroSource(16), cost, Version2B)
		assert.ErrorIs(t, err, ErrInvalidCost, "cost %d", cost)
	}

	for _, v := range []Version{Version2X, Version2Y, Version(0)} {
		_, err := GenSalt(zeroSource(16), DefaultCost, v)
		assert.ErrorIs(t, err, ErrInvalidPrefix, "prefix %v", v)
	}

	got, err := GenSalt(brokenSource{}, DefaultCost, Version2B)
	assert.ErrorIs(t, err, entropy.ErrEntropy)
	assert.Nil(t, got)
}

func TestGenSalt_SystemEntropyIsRandom(t *testing.T) {
	a, err := GenSalt(entropy.System, MinCost, Version2B)
	require.NoError(t, err)
	b, err := GenSalt(entropy.System, MinCost, Version2B)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyPassword(t *testing.T) {
	salt, err := GenSalt(entropy.System, MinCost, Version2B)
	require.NoError(t, err)

	hashed, err := HashPassword([]byte("correct horse"), salt)
	require.NoError(t, err)

	ok, err := VerifyPassword([]byte("correct horse"), hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, wrong := range []string{"", "correct hors", "correct horse ", "Correct horse"} {
		ok, err := VerifyPassword([]byte(wrong), hashed)
		require.NoError(t, err)
		assert.False(t, ok, "password %q", wrong)
	}

	// the version tag is a label, the digest still matches
	retagged := append([]byte("$2a$"), hashed[4:]...)
	ok, err = VerifyPassword([]byte("correct horse"), retagged)
	require.NoError(t, err)
	assert.True(t, ok)

	tampered := bytes.Clone(hashed)
	tampered[len(tampered)-2] ^= 1
	ok, err = VerifyPassword([]byte("correct horse"), tampered)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyPassword([]byte("correct horse"), []byte("$2q$04$garbage"))
	assert.ErrorIs(t, err, ErrInvalidSalt)
}

func TestHashPassword_Deterministic(t *testing.T) {
	salt := []byte("$2b$05$R9h/cIPz0gi.URNNX3kh2O")
	a, err := HashPassword([]byte("same input"), salt)
	require.NoError(t, err)
	b, err := HashPassword([]byte("same input"), salt)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestInteroperability_XCrypto(t *testing.T) {
	password := []byte("interop password")

	ours, err := HashPassword(password, []byte("$2a$05$R9h/cIPz0gi.URNNX3kh2O"))
	require.NoError(t, err)
	require.NoError(t, xbcrypt.CompareHashAndPassword(ours, password))

	theirs, err := xbcrypt.GenerateFromPassword(password, 5)
	require.NoError(t, err)
	ok, err := VerifyPassword(password, theirs)
	require.NoError(t, err)
	assert.True(t, ok)

	c, err := Cost(theirs)
	require.NoError(t, err)
	assert.Equal(t, 5, c)
}

func TestDigest(t *testing.T) {
	salt := bytes.Repeat([]byte("0"), SaltLen)

	d, err := Digest([]byte("pw"), salt, MinCost, RejectLong)
	require.NoError(t, err)
	assert.Len(t, d, 24)

	enc, err := HashPassword([]byte("pw"), []byte("$2b$04$KB.uKB.uKB.uKB.uKB.uK."))
	require.NoError(t, err)
	assert.Equal(t, string(base64x.Encode(d[:DigestLen])), string(enc[29:]))

	_, err = Digest([]byte("pw"), salt[:8], MinCost, RejectLong)
	assert.ErrorIs(t, err, ErrInvalidSalt)
	_, err = Digest([]byte("pw"), salt, MaxCost+1, RejectLong)
	assert.ErrorIs(t, err, ErrInvalidCost)
	_, err = Digest(make([]byte, 73), salt, MinCost, RejectLong)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestHashPassword_CostMonotonic(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test skipped in short mode")
	}

	elapsed := func(cost int) time.Duration {
		salt, err := Serialize(Version2B, cost, bytes.Repeat([]byte("0"), SaltLen), nil)
		require.NoError(t, err)
		start := time.Now()
		_, err = HashPassword([]byte("password"), salt)
		require.NoError(t, err)
		return time.Since(start)
	}

	fast := elapsed(4)
	slow := elapsed(9)
	// cost 9 does 32 times the key expansions of cost 4
	assert.Greater(t, slow, fast)
}

func TestVersion(t *testing.T) {
	for _, tag := range []string{"2a", "2b", "2x", "2y"} {
		v, err := ParseVersion(tag)
		require.NoError(t, err)
		assert.Equal(t, tag, v.String())
	}

	_, err := ParseVersion("2")
	assert.ErrorIs(t, err, ErrInvalidSalt)

	v, err := ParsePrefix("2a")
	require.NoError(t, err)
	assert.Equal(t, Version2A, v)

	_, err = ParsePrefix("2y")
	assert.ErrorIs(t, err, ErrInvalidPrefix)

	assert.Equal(t, "Version(0)", Version(0).String())
}
